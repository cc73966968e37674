package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Logger provides leveled logging (info/warning/error) to stdout/stderr and,
// optionally, to one file per level.
type Logger struct {
	infoLog    *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	files      []*os.File
}

// New creates a Logger. When logDir is empty only the console is written.
func New(logDir string) (*Logger, error) {
	if logDir == "" {
		return NewWithWriters(os.Stdout, os.Stderr), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	l := &Logger{}
	var handles [3]*os.File
	for i, name := range []string{"info.log", "warning.log", "error.log"} {
		f, err := os.OpenFile(filepath.Join(logDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			l.Close()
			return nil, fmt.Errorf("failed to open log file %s: %w", name, err)
		}
		handles[i] = f
		l.files = append(l.files, f)
	}

	l.setup(io.MultiWriter(os.Stdout, handles[0]),
		io.MultiWriter(os.Stdout, handles[1]),
		io.MultiWriter(os.Stderr, handles[2]))
	return l, nil
}

// NewWithWriters builds a Logger on arbitrary writers; tests pass io.Discard.
func NewWithWriters(out, errOut io.Writer) *Logger {
	l := &Logger{}
	l.setup(out, out, errOut)
	return l
}

func (l *Logger) setup(info, warning, errw io.Writer) {
	flags := log.Ldate | log.Ltime | log.Lmsgprefix
	l.infoLog = log.New(info, "INFO    ", flags)
	l.warningLog = log.New(warning, "WARNING ", flags)
	l.errorLog = log.New(errw, "ERROR   ", flags)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.infoLog.Printf(format, v...)
}

func (l *Logger) Warning(format string, v ...interface{}) {
	l.warningLog.Printf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.errorLog.Printf(format, v...)
}

// Close releases the log files, if any.
func (l *Logger) Close() {
	for _, f := range l.files {
		f.Close()
	}
	l.files = nil
}
