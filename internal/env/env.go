package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pipewatch/pipewatch/internal/envparse"
	"github.com/pipewatch/pipewatch/internal/envutil"
)

type MailerType string

const (
	MailerTypeUnspecified MailerType = ""
	MailerTypeSMTP        MailerType = "smtp"
)

func parseMailerType(value string) (MailerType, error) {
	switch MailerType(value) {
	case MailerTypeUnspecified, MailerTypeSMTP:
		return MailerType(value), nil
	default:
		return MailerTypeUnspecified, fmt.Errorf("invalid mailer type: %v", value)
	}
}

type MailerSMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	ImplicitTLS bool
}

type MailerConfig struct {
	Type        MailerType
	FromAddress string
	SmtpConfig  *MailerSMTPConfig
}

var (
	serverAddr                  string
	mailerConfig                MailerConfig
	slackWebhookURL             *string
	sentryDSN                   string
	sentryDebug                 bool
	sentryEnvironment           string
	ingestionRateLimitPerMinute int
	staleDeploymentCheckCron    *string
	staleDeploymentCheckTimeout time.Duration
	staleDeploymentThreshold    time.Duration
	deliveryTimeout             time.Duration
	serverShutdownDelayDuration *time.Duration
)

func Initialize() {
	if currentEnv, ok := os.LookupEnv("PIPEWATCH_ENV"); ok {
		fmt.Fprintf(os.Stderr, "environment=%v\n", currentEnv)
		if err := godotenv.Load(currentEnv); err != nil {
			fmt.Fprintf(os.Stderr, "environment %v not loaded: %v\n", currentEnv, err)
		}
		secretEnv := currentEnv + ".secret"
		if err := godotenv.Load(secretEnv); err != nil {
			fmt.Fprintf(os.Stderr, "environment %v not loaded: %v\n", secretEnv, err)
		}
	}

	serverAddr = envutil.GetEnvParsedOrDefault("PIPEWATCH_ADDR", parseString, ":8080")
	ingestionRateLimitPerMinute = envutil.GetEnvParsedOrDefault(
		"INGESTION_RATE_LIMIT_PER_MINUTE", envparse.NonNegativeNumber, 600,
	)

	mailerConfig.Type = envutil.GetEnvParsedOrDefault("MAILER_TYPE", parseMailerType, MailerTypeUnspecified)
	if mailerConfig.Type != MailerTypeUnspecified {
		mailerConfig.FromAddress = envutil.RequireEnvParsed("MAILER_FROM_ADDRESS", parseMailAddress)
	}
	if mailerConfig.Type == MailerTypeSMTP {
		mailerConfig.SmtpConfig = &MailerSMTPConfig{
			Host:        envutil.GetEnv("MAILER_SMTP_HOST"),
			Port:        envutil.RequireEnvParsed("MAILER_SMTP_PORT", strconv.Atoi),
			Username:    envutil.GetEnv("MAILER_SMTP_USERNAME"),
			Password:    envutil.GetEnv("MAILER_SMTP_PASSWORD"),
			ImplicitTLS: envutil.GetEnvParsedOrDefault("MAILER_SMTP_IMPLICIT_TLS", strconv.ParseBool, false),
		}
	}

	slackWebhookURL = envutil.GetEnvOrNil("SLACK_WEBHOOK_URL")

	sentryDSN = envutil.GetEnv("SENTRY_DSN")
	sentryDebug = envutil.GetEnvParsedOrDefault("SENTRY_DEBUG", strconv.ParseBool, false)
	sentryEnvironment = envutil.GetEnv("SENTRY_ENVIRONMENT")

	staleDeploymentCheckCron = envutil.GetEnvOrNil("STALE_DEPLOYMENT_CHECK_CRON")
	staleDeploymentCheckTimeout = envutil.GetEnvParsedOrDefault("STALE_DEPLOYMENT_CHECK_TIMEOUT",
		envparse.PositiveDuration, 0)
	staleDeploymentThreshold = envutil.GetEnvParsedOrDefault("STALE_DEPLOYMENT_THRESHOLD",
		envparse.PositiveDuration, 30*time.Minute)
	deliveryTimeout = envutil.GetEnvParsedOrDefault("DELIVERY_TIMEOUT", envparse.PositiveDuration, 10*time.Second)
	serverShutdownDelayDuration = envutil.GetEnvParsedOrNil("SERVER_SHUTDOWN_DELAY_DURATION", envparse.PositiveDuration)
}

func parseString(s string) (string, error) {
	return s, nil
}

func parseMailAddress(s string) (string, error) {
	if addr, err := envparse.MailAddress(s); err != nil {
		return "", err
	} else {
		return addr.Address, nil
	}
}

func ServerAddr() string {
	return serverAddr
}

func GetMailerConfig() MailerConfig {
	return mailerConfig
}

func SlackWebhookURL() *string {
	return slackWebhookURL
}

func SentryDSN() string {
	return sentryDSN
}

func SentryDebug() bool {
	return sentryDebug
}

func SentryEnvironment() string {
	return sentryEnvironment
}

func IngestionRateLimitPerMinute() int {
	return ingestionRateLimitPerMinute
}

func StaleDeploymentCheckCron() *string {
	return staleDeploymentCheckCron
}

func StaleDeploymentCheckTimeout() time.Duration {
	return staleDeploymentCheckTimeout
}

func StaleDeploymentThreshold() time.Duration {
	return staleDeploymentThreshold
}

func DeliveryTimeout() time.Duration {
	return deliveryTimeout
}

func ServerShutdownDelayDuration() *time.Duration {
	return serverShutdownDelayDuration
}
