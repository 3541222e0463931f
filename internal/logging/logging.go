// Package logging builds the process logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger at the given level. Outside development the output is
// JSON so it can be shipped as is; an unknown level falls back to info.
func New(level string, development bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if development {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

// Component tags every entry with the emitting component.
func Component(log logrus.FieldLogger, name string) logrus.FieldLogger {
	return log.WithField("component", name)
}
