package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Logger is a key/value logger over zap. Every call runs its fields through
// the process redactor before they reach zap.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
	red           *redactor
}

var levels = map[string]zap.AtomicLevel{
	"prod":       zap.NewAtomicLevelAt(zap.InfoLevel),
	"production": zap.NewAtomicLevelAt(zap.InfoLevel),
	"test":       zap.NewAtomicLevelAt(zap.WarnLevel),
}

func New(mode string) (*Logger, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	cfg := zap.NewDevelopmentConfig()
	if mode == "prod" || mode == "production" {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	if lvl, ok := levels[mode]; ok {
		cfg.Level = lvl
	}

	red, err := loadRedactor()
	if err != nil {
		return nil, err
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &Logger{SugaredLogger: z.Sugar(), red: red}, nil
}

// Nop discards everything. Handy for fakes that need a *Logger.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar(), red: &redactor{}}
}

func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

func (l *Logger) Debug(msg string, kv ...interface{}) { l.SugaredLogger.Debugw(msg, l.red.fields(kv)...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.SugaredLogger.Infow(msg, l.red.fields(kv)...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.SugaredLogger.Warnw(msg, l.red.fields(kv)...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.SugaredLogger.Errorw(msg, l.red.fields(kv)...) }
func (l *Logger) Fatal(msg string, kv ...interface{}) { l.SugaredLogger.Fatalw(msg, l.red.fields(kv)...) }

func (l *Logger) With(kv ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(l.red.fields(kv)...), red: l.red}
}
