package shared

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the CLI logger. Level names follow logrus ("warn",
// "debug", ...); an unknown name falls back to warn. debug forces DebugLevel.
func NewLogger(out io.Writer, level string, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.WarnLevel
	}
	if debug {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger
}
