// Package logging writes the CLI's log to a rotated file in the data
// directory. The terminal belongs to the prompts and the dashboard, so
// nothing is logged to stdout or stderr.
package logging

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rezmoss/taskit/internal/config"
)

// Logger is a *log.Logger that owns its rotating file.
type Logger struct {
	*log.Logger
	closer io.Closer
}

// New opens the log file described by cfg. Debug adds file:line to every line.
func New(cfg config.Config) *Logger {
	w := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		Compress:   true,
	}
	flags := log.LstdFlags | log.Lmicroseconds
	if cfg.Debug {
		flags |= log.Lshortfile
	}
	return &Logger{Logger: log.New(w, "taskit ", flags), closer: w}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard, "", 0)}
}

func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
