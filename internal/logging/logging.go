// Package logging holds the process-wide logrus entry shared by the library
// packages and the CLI.
package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Entry
)

// Fields is an alias so callers need not import logrus for structured fields.
type Fields = logrus.Fields

func init() {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
}

// SetLevel sets the level of the shared logger.
func SetLevel(l logrus.Level) {
	logger.Logger.SetLevel(l)
}

// SetLevelName parses a level name such as "debug" or "warn". Unknown names
// leave the level unchanged.
func SetLevelName(name string) error {
	l, err := logrus.ParseLevel(strings.TrimSpace(name))
	if err != nil {
		return err
	}
	SetLevel(l)
	return nil
}

// Entry returns the shared entry.
func Entry() *logrus.Entry {
	return logger
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return logger.WithField("component", name)
}

// WithError returns the shared entry carrying err.
func WithError(e error) *logrus.Entry {
	return logger.WithError(e)
}
