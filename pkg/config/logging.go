package config

import (
	"io"
	"os"

	"github.com/mpapenbr/socceranalyzer-go/log"
)

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// NewLogger creates the logger described by c writing to w.
// Format "json" writes JSON entries, anything else human readable ones.
func (c Log) NewLogger(w io.Writer) (*log.Logger, error) {
	var logger *log.Logger
	switch c.Format {
	case "json":
		logger = log.New(w,
			parseLogLevel(c.Level, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(w,
			parseLogLevel(c.Level, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if c.Rules == "" {
		return logger, nil
	}
	return logger.WithFilterRules(c.Rules)
}

// SetupLogger replaces the default logger with one writing to stderr
func SetupLogger(c Log) error {
	logger, err := c.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	log.ResetDefault(logger)
	return nil
}
