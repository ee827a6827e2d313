package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Init configures the logrus standard logger used across the CLI. Format
// must be "text" or "json"; an unknown level is an error. A nil writer
// leaves the default output (stderr) in place.
func Init(level, format string, w io.Writer) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logging: invalid level %q: %w", level, err)
	}
	logrus.SetLevel(parsed)

	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{})
	default:
		return fmt.Errorf("logging: unknown format %q", format)
	}

	if w != nil {
		logrus.SetOutput(w)
	}
	return nil
}

// New returns an entry tagged with the component emitting the logs.
func New(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
