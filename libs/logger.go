package libs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

type loggerKey struct{}

const ginLoggerKey = "logger"

var (
	loggerOnce sync.Once
	baseLogger *slog.Logger
)

// InitLogger configures the process logger once and installs it as the slog default.
// An empty filePath logs to stdout only.
func InitLogger(component, filePath, level string) *slog.Logger {
	loggerOnce.Do(func() {
		var w io.Writer = os.Stdout
		if filePath != "" {
			_ = os.MkdirAll(filepath.Dir(filePath), 0o755)
			rot := &lumberjack.Logger{
				Filename:   filePath,
				MaxSize:    50, // MB
				MaxBackups: 3,
				MaxAge:     7, // days
			}
			w = io.MultiWriter(os.Stdout, rot)
		}

		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
		baseLogger = slog.New(h).With("component", component)
		slog.SetDefault(baseLogger)
	})
	return baseLogger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Logger returns the process logger, falling back to slog.Default before InitLogger runs.
func Logger() *slog.Logger {
	if baseLogger == nil {
		return slog.Default()
	}
	return baseLogger
}

// NewLogger derives a component logger sharing the process handler.
func NewLogger(component string) *slog.Logger {
	return Logger().With("component", component)
}

// NopLogger discards everything; used by tests and optional collaborators.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFromCtx returns the request logger carried by ctx, or fallback when there is none.
func LoggerFromCtx(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	if fallback == nil {
		return Logger()
	}
	return fallback
}

// SetRequestLogger stores the request-scoped logger in both the gin and request contexts.
func SetRequestLogger(c *gin.Context, l *slog.Logger) {
	c.Set(ginLoggerKey, l)
	c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), l))
}

func RequestLogger(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(ginLoggerKey); ok {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Logger()
}
