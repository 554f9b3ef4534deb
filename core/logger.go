package core

import (
	"fmt"
	"io"
	"log"
)

// Logger receives diagnostic output from iterators and jobs.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// StdLogger writes leveled messages through the standard library logger.
type StdLogger struct {
	logger *log.Logger
}

func NewLogger(out io.Writer) *StdLogger {
	return &StdLogger{
		logger: log.New(out, "", log.Ldate|log.Ltime),
	}
}

func (l *StdLogger) log(level, message string) {
	l.logger.Printf("[%s]: %s", level, message)
}

func (l *StdLogger) Debugf(format string, args ...any) {
	l.log("debug", fmt.Sprintf(format, args...))
}

func (l *StdLogger) Infof(format string, args ...any) {
	l.log("info", fmt.Sprintf(format, args...))
}

func (l *StdLogger) Warnf(format string, args ...any) {
	l.log("warn", fmt.Sprintf(format, args...))
}

func (l *StdLogger) Errorf(format string, args ...any) {
	l.log("error", fmt.Sprintf(format, args...))
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Logger {
	return nopLogger{}
}
