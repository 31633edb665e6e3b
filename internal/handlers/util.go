package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	internalctx "github.com/pipewatch/pipewatch/internal/context"
	"go.uber.org/zap"
)

var ErrParamNotDefined = errors.New("parameter not defined")

func RespondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// response is already partially written at this point
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func JsonBody[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var result T
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		internalctx.GetLogger(r.Context()).Debug("failed to decode request body", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return result, err
	}
	return result, nil
}

func QueryParam[T any](r *http.Request, name string, parseFunc func(string) (T, error)) (T, error) {
	if !r.URL.Query().Has(name) {
		var zero T
		return zero, ErrParamNotDefined
	}
	return parseFunc(r.URL.Query().Get(name))
}

func ParseTimeFunc(layout string) func(string) (time.Time, error) {
	return func(value string) (time.Time, error) {
		return time.Parse(layout, value)
	}
}

func parseString(s string) (string, error) {
	return s, nil
}
