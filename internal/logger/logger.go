package logger

import (
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/config"
)

// New создает логгер по настройкам LOG_LEVEL / LOG_FORMAT.
func New(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	}

	return log
}

// InitSentry включает отправку ошибок в Sentry. Пустой DSN - ничего не делает.
func InitSentry(dsn, environment string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
	if err != nil {
		return nil, err
	}

	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureError пишет непредвиденную ошибку в лог и в Sentry вместе с контекстом.
func CaptureError(log logrus.FieldLogger, errorType string, err error, fields logrus.Fields) {
	entry := log.WithFields(fields).WithFields(logrus.Fields{
		"error_type": errorType,
		"error":      err.Error(),
	})
	entry.Error("unexpected failure")

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("error_type", errorType)
		for k, v := range fields {
			scope.SetExtra(k, v)
		}
		sentry.CaptureException(err)
	})
}
