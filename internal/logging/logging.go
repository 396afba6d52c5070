// Package logging builds the zap loggers used by the scoring pipeline.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/empscore/internal/config"
)

// New builds a logger from cfg. Pretty selects the human readable
// development encoder; otherwise JSON lines are written to stderr.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	var c zap.Config
	var opts []zap.Option
	if cfg.Pretty {
		c = zap.NewDevelopmentConfig()
		opts = append(opts, zap.AddStacktrace(zap.ErrorLevel))
	} else {
		c = zap.NewProductionConfig()
	}

	level := zap.NewAtomicLevel()

	levelName := "INFO"
	if cfg.Level != "" {
		levelName = strings.ToUpper(cfg.Level)
	}

	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("could not parse log level %s", cfg.Level)
	}
	c.Level = level

	return c.Build(opts...)
}
