// Package logger provides the project-wide structured logger, a thin
// singleton wrapper over logrus.
package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	log  *logrus.Logger
)

// GetProjectLogger returns the shared project logger, initialising it on
// first use. Level is read from LUMACUE_LOG_LEVEL (defaulting to "info");
// an unrecognised value falls back to info rather than failing startup.
func GetProjectLogger() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetOutput(os.Stderr)

		level, err := logrus.ParseLevel(os.Getenv("LUMACUE_LOG_LEVEL"))
		if err != nil {
			level = logrus.InfoLevel
		}
		log.SetLevel(level)
	})
	return log
}
