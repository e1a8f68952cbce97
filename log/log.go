package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

const DefaultLevel = logrus.InfoLevel

var (
	logger     = logrus.New()
	sentryHook *SentryHook
)

func init() {
	logger.SetOutput(os.Stdout)
	logger.SetLevel(DefaultLevel)
}

// Init configures the logger for the given environment and attaches the Sentry hook if SENTRY_DSN is set
func Init(env, commit string) {
	if env != "development" && env != "test" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(level)
	}

	sentryHook = NewSentryHook(env, commit)
	if sentryHook != nil {
		logger.AddHook(sentryHook)
	}
}

// SetOutput sets the logger output, mainly for testing
func SetOutput(out *os.File) {
	logger.SetOutput(out)
}

// SetUser tags subsequent Sentry events with the given user
func SetUser(id, username, email string) {
	if sentryHook == nil {
		return
	}
	sentryHook.SetUser(id, username, email)
}

func WithFields(fields map[string]any) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Fatalf(format string, args ...any) {
	logger.Fatalf(format, args...)
}
