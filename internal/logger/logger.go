package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Sugar is the global sugared logger instance. It discards everything
	// until Initialize is called.
	Sugar = zap.NewNop().Sugar()
)

// Config stores logger configuration
type Config struct {
	// LogLevel sets the minimum log level (debug, info, warn, error)
	LogLevel string
	// Output receives log lines; defaults to stderr so stdout stays free
	// for generated output.
	Output io.Writer
}

// ParseLevel maps a level name to a zap level. Unknown names yield info.
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(name) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// Initialize sets up the zap logger
func Initialize(config ...Config) {
	logConfig := Config{
		LogLevel: "info",
		Output:   os.Stderr,
	}

	if len(config) > 0 {
		logConfig = config[0]
		if logConfig.Output == nil {
			logConfig.Output = os.Stderr
		}
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(logConfig.Output),
		ParseLevel(logConfig.LogLevel),
	)

	Sugar = zap.New(core).Sugar()
}

// Sync flushes any buffered log entries
func Sync() {
	if Sugar != nil {
		_ = Sugar.Sync()
	}
}
