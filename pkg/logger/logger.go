package logger

import (
	"context"
	"io"
	"os"

	"github.com/Gthulhu/schedsim/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func InitLogger() *zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}

	logger := zerolog.New(consoleWriter).
		With().
		Timestamp().
		Caller().
		Logger()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.DefaultContextLogger = &logger
	return &logger
}

// InitLoggerWithConfig installs the default context logger from cfg.
// Console output goes to out; when cfg.FilePath is set, JSON lines are appended there too.
// The returned func closes the log file and is never nil.
func InitLoggerWithConfig(cfg config.LoggingConfig, out io.Writer) (*zerolog.Logger, func() error, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "parse log level %q", cfg.Level)
		}
		level = parsed
	}

	closeFile := func() error { return nil }
	writers := make([]io.Writer, 0, 2)
	if cfg.Console || cfg.FilePath == "" {
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"})
	}
	if cfg.FilePath != "" {
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log file %s", cfg.FilePath)
		}
		writers = append(writers, f)
		closeFile = f.Close
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Caller().
		Logger()
	zerolog.SetGlobalLevel(level)
	zerolog.DefaultContextLogger = &logger
	return &logger, closeFile, nil
}

func Logger(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
