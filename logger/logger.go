package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with the key-value property style used across the
// project.
type Logger struct {
	log *logrus.Logger
}

var (
	instance *Logger
	once     sync.Once
)

// GetLogger returns a singleton logger instance
func GetLogger() *Logger {
	once.Do(func() {
		instance = setupLogger()
	})
	return instance
}

// L is a shorthand for GetLogger
func L() *Logger {
	return GetLogger()
}

func setupLogger() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "02-01-06 15:04:05",
	})
	return &Logger{log: l}
}

func fields(props []map[string]interface{}) logrus.Fields {
	if len(props) == 0 || props[0] == nil {
		return logrus.Fields{}
	}
	return logrus.Fields(props[0])
}

func (l *Logger) Info(msg string, props ...map[string]interface{}) {
	l.log.WithFields(fields(props)).Info(msg)
}

func (l *Logger) Error(msg string, props ...map[string]interface{}) {
	l.log.WithFields(fields(props)).Error(msg)
}

func (l *Logger) Debug(msg string, props ...map[string]interface{}) {
	l.log.WithFields(fields(props)).Debug(msg)
}

// Fatal logs the message and exits the process with a non-zero status.
func (l *Logger) Fatal(msg string, props ...map[string]interface{}) {
	l.log.WithFields(fields(props)).Fatal(msg)
}

// EnableDebug enables debug logging
func (l *Logger) EnableDebug() {
	l.log.SetLevel(logrus.DebugLevel)
}

// DisableDebug disables debug logging
func (l *Logger) DisableDebug() {
	l.log.SetLevel(logrus.InfoLevel)
}
