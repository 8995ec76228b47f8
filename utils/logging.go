package utils

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIdHeader = "X-Request-Id"

// NewLogger builds the process logger. "json" targets log collectors, anything else
// is the one-line format used on a developer machine.
func NewLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			ReplaceAttr: GCPLoggerAttributeReplacer,
		}))
	}
	return slog.New(NewConsoleHandler(os.Stdout, slog.LevelDebug))
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

func StoreLoggerInContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// StoreLoggerInContextMiddleware attaches a request scoped logger carrying the request id.
// The id is taken from X-Request-Id when the client sends one, and echoed back.
func StoreLoggerInContextMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(RequestIdHeader)
		if requestId == "" || len(requestId) > 64 {
			requestId = uuid.NewString()
		}
		c.Header(RequestIdHeader, requestId)

		ctx := StoreLoggerInContext(c.Request.Context(), logger.With("request_id", requestId))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

var gcpSeverities = []struct {
	below    slog.Level
	severity string
}{
	{slog.LevelInfo, "DEBUG"},
	{slog.LevelWarn, "INFO"},
	{slog.LevelError, "WARNING"},
}

// GCPLoggerAttributeReplacer renames msg and level to the keys cloud logging parses.
func GCPLoggerAttributeReplacer(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.MessageKey:
		a.Key = "message"
	case slog.LevelKey:
		a.Key = "severity"
		level, _ := a.Value.Any().(slog.Level)
		a.Value = slog.StringValue("ERROR")
		for _, s := range gcpSeverities {
			if level < s.below {
				a.Value = slog.StringValue(s.severity)
				break
			}
		}
	}
	return a
}

// ConsoleHandler prints "15:04:05 LEVEL message" followed by the attributes in
// key=value form.
type ConsoleHandler struct {
	attrs slog.Handler
	mu    *sync.Mutex
	w     io.Writer
}

func NewConsoleHandler(w io.Writer, level slog.Leveler) *ConsoleHandler {
	return &ConsoleHandler{
		attrs: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey) {
					return slog.Attr{}
				}
				return a
			},
		}),
		mu: &sync.Mutex{},
		w:  w,
	}
}

func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.attrs.Enabled(ctx, level)
}

func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	var prefix bytes.Buffer
	prefix.WriteString(r.Time.Format("15:04:05"))
	prefix.WriteByte(' ')
	prefix.WriteString(levelColor(r.Level))
	prefix.WriteByte(' ')
	prefix.WriteString(r.Message)
	prefix.WriteByte(' ')

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := h.w.Write(prefix.Bytes()); err != nil {
		return err
	}
	return h.attrs.Handle(ctx, r)
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ConsoleHandler{attrs: h.attrs.WithAttrs(attrs), mu: h.mu, w: h.w}
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	return &ConsoleHandler{attrs: h.attrs.WithGroup(name), mu: h.mu, w: h.w}
}

func levelColor(level slog.Level) string {
	code := "31" // red
	switch {
	case level < slog.LevelInfo:
		code = "35"
	case level < slog.LevelWarn:
		code = "34"
	case level < slog.LevelError:
		code = "33"
	}
	return "\x1b[" + code + "m" + level.String() + "\x1b[0m"
}
