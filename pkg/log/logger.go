package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// SetupLogger installs a JSON slog default logger in Cloud Logging format and
// routes the library's loggers into it.
func SetupLogger(loglevel string) error {
	return SetupLoggerTo(os.Stdout, loglevel)
}

// SetupLoggerTo is SetupLogger with an explicit destination.
func SetupLoggerTo(w io.Writer, loglevel string) error {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return err
	}
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     slog.Level(level),
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			case slog.SourceKey:
				attr = slog.Attr{
					Key:   "logging.googleapis.com/sourceLocation",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(w, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	logger := slog.New(errFmtHandler)
	slog.SetDefault(logger)
	SetProvider(NewSlogProvider(logger))
	return nil
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// slogLogger implements Logger on top of *slog.Logger.
type slogLogger struct {
	sl *slog.Logger
}

func (l *slogLogger) log(level slog.Level, msg string, fields []any) {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = append([]any{ErrAttr(err)}, fields[1:]...)
		}
	}
	l.sl.Log(context.Background(), level, msg, fields...)
}

// Debug implements Logger.Debug.
func (l *slogLogger) Debug(msg string, fields ...any) { l.log(slog.LevelDebug, msg, fields) }

// Info implements Logger.Info.
func (l *slogLogger) Info(msg string, fields ...any) { l.log(slog.LevelInfo, msg, fields) }

// Warn implements Logger.Warn.
func (l *slogLogger) Warn(msg string, fields ...any) { l.log(slog.LevelWarn, msg, fields) }

// Error implements Logger.Error.
func (l *slogLogger) Error(msg string, fields ...any) { l.log(slog.LevelError, msg, fields) }

// With implements Logger.With.
func (l *slogLogger) With(fields ...any) Logger {
	return &slogLogger{sl: l.sl.With(fields...)}
}

// Enabled implements Logger.Enabled.
func (l *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return l.sl.Enabled(ctx, slog.Level(level))
}

// SlogProvider implements LoggerProvider on top of an existing *slog.Logger.
// Level filtering is left to the slog handler.
type SlogProvider struct {
	logger *slog.Logger
}

// NewSlogProvider creates a provider that forwards to logger.
func NewSlogProvider(logger *slog.Logger) *SlogProvider {
	return &SlogProvider{logger: logger}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *SlogProvider) GetLogger() Logger {
	return &slogLogger{sl: p.logger}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return &slogLogger{sl: p.logger.With(ComponentKey, name)}
}

// SetLevel implements LoggerProvider.SetLevel. The handler owns the level.
func (p *SlogProvider) SetLevel(level Level) {}
