package telemetry

import (
	"os"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerOnce sync.Once
	logger     *zap.Logger
)

// stdoutSink resolves os.Stdout on every write so redirected stdout is honored.
type stdoutSink struct{}

func (stdoutSink) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdoutSink) Sync() error                 { return nil }

func base() *zap.Logger {
	loggerOnce.Do(func() {
		encCfg := zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
		}
		var enc zapcore.Encoder
		if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
			enc = zapcore.NewConsoleEncoder(encCfg)
		} else {
			enc = zapcore.NewJSONEncoder(encCfg)
		}
		level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
			level.SetLevel(zapcore.DebugLevel)
		}
		logger = zap.New(zapcore.NewCore(enc, zapcore.AddSync(stdoutSink{}), level))
	})
	return logger
}

// L exposes the underlying zap logger for callers that want typed fields.
func L() *zap.Logger {
	return base()
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	base().Info(msg, toZap(fields)...)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	base().Warn(msg, toZap(fields)...)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	base().Error(msg, toZap(fields)...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = base().Sync()
}

func toZap(fields map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if err, ok := v.(error); ok {
			out = append(out, zap.String(k, err.Error()))
			continue
		}
		out = append(out, zap.Any(k, v))
	}
	return out
}
