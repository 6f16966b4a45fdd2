// Package logging builds the application's logrus logger. The TUI owns
// stdout, so records go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/studynav/internal/config"
	"github.com/abhisek/studynav/internal/store"
)

const defaultFile = "studynav.log"

// New returns a JSON logger writing to cfg.File, or studynav.log in the data
// directory when no file is set. The returned closer releases the file.
func New(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	path := cfg.File
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, defaultFile)
	}
	if err := store.EnsureDir(path); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	log, err := NewWriter(f, cfg.Level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return log, f, nil
}

// NewWriter returns a JSON logger writing to w at the named level.
func NewWriter(w io.Writer, level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(w)

	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	log.SetLevel(lvl)
	return log, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
