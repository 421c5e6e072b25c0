package stmt

import (
	"fmt"

	"go.uber.org/zap"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelDev
	LogLevelProd
)

// ParseLogLevel maps "silent", "dev" and "prod" to a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	switch s {
	case "", "silent", "none":
		return LogLevelSilent, nil
	case "dev", "development", "debug":
		return LogLevelDev, nil
	case "prod", "production":
		return LogLevelProd, nil
	}
	return LogLevelSilent, fmt.Errorf("unknown log level %q", s)
}

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type zapLogger struct {
	l *zap.SugaredLogger
}

func newZapLogger(level LogLevel) (*zapLogger, error) {
	switch level {
	case LogLevelSilent:
		return &zapLogger{zap.NewNop().Sugar()}, nil
	case LogLevelDev:
		l, err := zap.NewDevelopmentConfig().Build()
		if err != nil {
			return nil, err
		}
		return &zapLogger{l.Sugar()}, nil
	case LogLevelProd:
		l, err := zap.NewProductionConfig().Build()
		if err != nil {
			return nil, err
		}
		return &zapLogger{l.Sugar()}, nil
	default:
		return nil, fmt.Errorf("log level should be one of LogLevelSilent, LogLevelDev or LogLevelProd")
	}
}

// NewZapLogger wraps an existing zap logger.
func NewZapLogger(l *zap.Logger) Logger {
	return &zapLogger{l.Sugar()}
}

func (z *zapLogger) Debugf(format string, args ...any) {
	z.l.Debugf(format, args...)
}

func (z *zapLogger) Infof(format string, args ...any) {
	z.l.Infof(format, args...)
}

func (z *zapLogger) Warnf(format string, args ...any) {
	z.l.Warnf(format, args...)
}

func (z *zapLogger) Errorf(format string, args ...any) {
	z.l.Errorf(format, args...)
}

func (z *zapLogger) sync() error {
	return z.l.Sync()
}
