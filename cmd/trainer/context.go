package main

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/flightprice/backend/internal/config"
	"github.com/flightprice/backend/internal/logger"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads --config when given, otherwise the usual .env,
// configs/config.yaml and environment lookup
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		if path != "" {
			c.config, c.configErr = config.LoadFromFile(path)
			return
		}
		c.config, c.configErr = config.Load()
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *zap.Logger {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		return zap.NewNop()
	}
	return logger.New(cfg.Logging).WithOptions(zap.AddCallerSkip(-1))
}
