package common

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// SetupLogging configures the default logger. Unknown levels fall back to info.
func SetupLogging(level string, json bool) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
	if json {
		logger.SetFormatter(log.JSONFormatter)
	}
	log.SetDefault(logger)
	if err != nil && level != "" {
		log.Warn("unknown log level, using info", "level", level)
	}
}
