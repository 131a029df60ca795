package client

import "go.uber.org/zap"

// ZapLogger adapts a [zap.Logger] to the [RequestLogger] interface.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger returns a [RequestLogger] writing to logger. A nil logger
// yields a no-op zap logger.
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapLogger{sugar: logger.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *ZapLogger) Errorf(format string, v ...any) { l.sugar.Errorf(format, v...) }
func (l *ZapLogger) Warnf(format string, v ...any)  { l.sugar.Warnf(format, v...) }
func (l *ZapLogger) Debugf(format string, v ...any) { l.sugar.Debugf(format, v...) }
