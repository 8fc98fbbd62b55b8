package infra

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Allow changing log level at run time.
	LoggerLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

type LoggerFactory struct {
	baseLogger *zap.Logger
}

func (f *LoggerFactory) Create(name string) *zap.Logger {
	return f.baseLogger.Named(name)
}

// ProvideLoggerFactory builds the base logger from LOG_LEVEL (default info)
// and LOG_ENCODING (console or json, default console).
func ProvideLoggerFactory() (*LoggerFactory, error) {
	cfg, err := newLoggerConfig(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_ENCODING"))
	if err != nil {
		return nil, err
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	logger.Info("logger created", zap.String("level", LoggerLevel.String()), zap.String("encoding", cfg.Encoding))

	return &LoggerFactory{
		baseLogger: logger,
	}, nil
}

func newLoggerConfig(level string, encoding string) (zap.Config, error) {
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return zap.Config{}, fmt.Errorf("invalid LOG_LEVEL[%v]: %w", level, err)
		}
		LoggerLevel.SetLevel(parsed)
	}

	// Colors only make sense on a terminal.
	encodeLevel := zapcore.CapitalColorLevelEncoder
	switch encoding {
	case "", "console":
		encoding = "console"
	case "json":
		encodeLevel = zapcore.LowercaseLevelEncoder
	default:
		return zap.Config{}, fmt.Errorf("invalid LOG_ENCODING[%v], want console or json", encoding)
	}

	return zap.Config{
		Level:            LoggerLevel,
		Development:      false,
		Encoding:         encoding,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "name",
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    encodeLevel,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}, nil
}

// NewNopLoggerFactory discards everything. Used by tests.
func NewNopLoggerFactory() *LoggerFactory {
	return &LoggerFactory{baseLogger: zap.NewNop()}
}
