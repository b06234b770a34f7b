package logger

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type ctxKey string

// ActorKey is the context key holding the email of the user behind a request
const ActorKey ctxKey = "actor_email"

// Logger wraps logrus for structured logging with context support
type Logger struct {
	*logrus.Entry
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Entry: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithContext creates a logger tagged with the user found in ctx
func WithContext(ctx context.Context) *Logger {
	l := New()
	if email, ok := ctx.Value(ActorKey).(string); ok && email != "" {
		l.Entry = l.Entry.WithField("user", email)
	} else {
		l.Entry = l.Entry.WithField("user", "unknown")
	}
	return l
}

// ContextWithActor stores the acting user's email for WithContext
func ContextWithActor(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ActorKey, email)
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithField(key, value),
	}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithFields(fields),
	}
}

// Setup configures the global logrus logger: JSON output at the given level
func Setup(level string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}
