package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type loggingConfig struct {
	logger     *slog.Logger
	ignorePath map[string]struct{}

	successLevel     slog.Level
	clientErrorLevel slog.Level
	serverErrorLevel slog.Level
}

type LoggerOption func(*loggingConfig)

func WithIgnorePath(paths ...string) LoggerOption {
	return func(c *loggingConfig) {
		for _, path := range paths {
			c.ignorePath[path] = struct{}{}
		}
	}
}

// WithSuccessLevel reads REQUEST_LOGGING_LEVEL. "all" logs successful requests at info,
// "errors" demotes them to debug. Anything else keeps the default.
func WithSuccessLevel(requestLoggingLevel string) LoggerOption {
	return func(c *loggingConfig) {
		switch strings.ToLower(requestLoggingLevel) {
		case "all":
			c.successLevel = slog.LevelInfo
		case "errors":
			c.successLevel = slog.LevelDebug
		}
	}
}

// NewLogging writes one access log line per request, at warn for 4xx and error for 5xx.
func NewLogging(logger *slog.Logger, options ...LoggerOption) gin.HandlerFunc {
	l := &loggingConfig{
		logger:           logger,
		ignorePath:       make(map[string]struct{}),
		successLevel:     slog.LevelInfo,
		clientErrorLevel: slog.LevelWarn,
		serverErrorLevel: slog.LevelError,
	}
	for _, option := range options {
		option(l)
	}

	return func(c *gin.Context) {
		if _, ok := l.ignorePath[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		size := max(c.Writer.Size(), 0)

		level := l.successLevel
		switch {
		case status >= http.StatusInternalServerError:
			level = l.serverErrorLevel
		case status >= http.StatusBadRequest:
			level = l.clientErrorLevel
		}

		attributes := []slog.Attr{
			slog.Int("status", status),
			slog.Int64("latency_ms", latency.Milliseconds()),
			slog.String("client_ip", c.ClientIP()),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("data_length", size),
			slog.String("user_agent", c.Request.UserAgent()),
		}
		if len(c.Errors) > 0 {
			attributes = append(attributes, slog.String("error", c.Errors.String()))
		}
		l.logger.LogAttrs(c.Request.Context(), level,
			fmt.Sprintf("%s %s", c.Request.Method, path), attributes...)
	}
}
