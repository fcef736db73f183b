package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field names shared by every component so log lines can be queried uniformly.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldUserID     = "user_id"
	FieldJobPostID  = "job_post_id"
	FieldSourceURL  = "source_url"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldDurationMS = "duration_ms"
	FieldCount      = "count"
	FieldPage       = "page"
	FieldError      = "error"
	FieldKey        = "key"
)

// New builds the process logger: JSON in production, console output otherwise.
func New(environment string) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if strings.EqualFold(strings.TrimSpace(environment), "production") {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		l, err = cfg.Build()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// Component returns a named child of parent, or a no-op logger when parent is nil.
func Component(parent *zap.SugaredLogger, name string) *zap.SugaredLogger {
	if parent == nil {
		return zap.NewNop().Sugar()
	}
	return parent.Named(name)
}

func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
