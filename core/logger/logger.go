package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

const (
	logLevelEnv  = "DYNOBJ_LOG_LEVEL"
	logFormatEnv = "DYNOBJ_LOG_FORMAT"
)

var lg *logrus.Entry

// Logger returns the engine logger. The level is taken from DYNOBJ_LOG_LEVEL
// (default warning) and the format from DYNOBJ_LOG_FORMAT ("json" switches to
// JSON output).
func Logger() *logrus.Entry {
	if lg == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)

		levelStr := os.Getenv(logLevelEnv)
		if levelStr == "" {
			levelStr = "warning"
		}
		level, err := logrus.ParseLevel(levelStr)
		if err != nil {
			level = logrus.WarnLevel
		}
		l.SetLevel(level)

		if os.Getenv(logFormatEnv) == "json" {
			l.SetFormatter(&logrus.JSONFormatter{})
		} else {
			l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}

		lg = l.WithField("module", "dynobj")
	}
	return lg
}
