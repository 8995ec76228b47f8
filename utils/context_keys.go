package utils

type contextKey int

const (
	credentialsKey contextKey = iota
	loggerKey
	tracerKey
)
