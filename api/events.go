package api

import "time"

type DeploymentEvent struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Service       string    `json:"service"`
	Status        string    `json:"status"`
	CommitMessage string    `json:"commitMessage"`
	Deployer      string    `json:"deployer"`
	Environment   string    `json:"environment"`
	Branch        string    `json:"branch"`
}

type SubmitEventResponse struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

type EventFilterOptions struct {
	Services     []string `json:"services"`
	Environments []string `json:"environments"`
}
