package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type envVarType interface {
	string | int | bool | float64 | time.Duration
}

// GetEnv reads and parses an environment variable, returning defaultValue when it is unset or empty.
// A value that cannot be parsed is a configuration error and stops the process.
func GetEnv[T envVarType](envVarName string, defaultValue T) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		return defaultValue
	}
	value, err := parseEnvValue[T](envValue)
	if err != nil {
		panic(fmt.Sprintf("Environment variable %s is not valid: '%s' (%s)", envVarName, envValue, err))
	}
	return value
}

func GetRequiredEnv[T envVarType](envVarName string) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		log.Fatalf("%s environment variable is required", envVarName)
	}
	value, err := parseEnvValue[T](envValue)
	if err != nil {
		log.Fatalf("%s environment variable is not valid: '%s' (%s)", envVarName, envValue, err)
	}
	return value
}

// GetFirstEnv returns the first non empty variable among names, used for legacy aliases.
func GetFirstEnv(defaultValue string, names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return defaultValue
}

func parseEnvValue[T envVarType](raw string) (T, error) {
	var zero T
	var parsed any
	var err error

	switch any(zero).(type) {
	case string:
		parsed = raw
	case int:
		parsed, err = strconv.Atoi(raw)
	case bool:
		parsed, err = strconv.ParseBool(raw)
	case float64:
		parsed, err = strconv.ParseFloat(raw, 64)
	case time.Duration:
		parsed, err = time.ParseDuration(raw)
	}
	if err != nil {
		return zero, err
	}
	return parsed.(T), nil
}
