package envutil

import (
	"fmt"
	"os"
)

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvOrNil(key string) *string {
	if value, ok := os.LookupEnv(key); ok {
		return &value
	}
	return nil
}

func RequireEnv(key string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	panic(fmt.Sprintf("missing required environment variable: %v", key))
}

func RequireEnvParsed[T any](key string, parseFunc func(string) (T, error)) T {
	value, err := parseFunc(RequireEnv(key))
	if err != nil {
		panic(fmt.Sprintf("invalid environment variable %v: %v", key, err))
	}
	return value
}

func GetEnvParsedOrNil[T any](key string, parseFunc func(string) (T, error)) *T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	value, err := parseFunc(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid environment variable %v: %v", key, err))
	}
	return &value
}

func GetEnvParsedOrDefault[T any](key string, parseFunc func(string) (T, error), defaultValue T) T {
	if value := GetEnvParsedOrNil(key, parseFunc); value != nil {
		return *value
	}
	return defaultValue
}
