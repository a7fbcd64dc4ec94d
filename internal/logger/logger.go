// Package logger configures the process-wide logrus logger used by the
// CLI and the core engine's degraded-path diagnostics.
package logger

import (
	"fmt"

	"github.com/Anthya1104/evenodd-store/internal/config"
	"github.com/sirupsen/logrus"
)

// InitLogger sets the global logrus level and formatter. level must be one
// of the config.LogLevel* constants.
func InitLogger(level string) error {
	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}

	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return nil
}

func parseLevel(level string) (logrus.Level, error) {
	switch level {
	case config.LogLevelDebug:
		return logrus.DebugLevel, nil
	case config.LogLevelInfo:
		return logrus.InfoLevel, nil
	case config.LogLevelWarning:
		return logrus.WarnLevel, nil
	case config.LogLevelError:
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("logger: unknown level %q", level)
	}
}
