// Package logger builds the zap loggers used by the server and the CLI.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger at the given level. JSON output uses zap's production
// config; otherwise a console encoder writes to stderr, leaving stdout free
// for command output and the MCP stdio transport.
func New(jsonOutput bool, level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		return config.Build()
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	return zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(zapcore.AddSync(os.Stderr)),
			lvl,
		),
	), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
