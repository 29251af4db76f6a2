// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tariffhound/tariffhound/internal/config"
)

// Init configures the standard logrus logger from cfg and returns it.
//
// With a log file path set, output goes to a size-rotated JSON log. Without
// one, output goes to stderr as human-readable text.
func Init(cfg *config.Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.LogLevel, err)
	}

	log := logrus.StandardLogger()
	log.SetLevel(level)
	log.SetOutput(output(cfg))

	if cfg.LogFilePath != "" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log, nil
}

func output(cfg *config.Config) io.Writer {
	if cfg.LogFilePath == "" {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		Compress:   cfg.LogCompress,
	}
}
