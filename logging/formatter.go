package logging

import (
	"github.com/sirupsen/logrus"
)

// NewFormatter returns the json formatter for the "json" format
// and a logfmt like text formatter otherwise.
func NewFormatter(conf *Config) logrus.Formatter {
	if conf.Format == "json" {
		return NewJSONColorFormatter(conf.ParentFieldKey, conf.Pretty)
	}

	return &logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	}
}

// ParseLevel falls back to the info level for unknown values.
func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
