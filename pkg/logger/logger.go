package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/johnquangdev/fathom-relay/pkg/config"
)

// New builds the application logger. Production uses the JSON encoder,
// anything else the console encoder. An optional log file is written in
// addition to stderr.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Server.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	if cfg.Log.File != "" {
		zcfg.OutputPaths = append(zcfg.OutputPaths, cfg.Log.File)
	}

	return zcfg.Build()
}
