package main

import (
	"strings"
	"sync"

	"github.com/handiism/hitster-cards/internal/config"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Settings
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// configPath returns the --config value or the default location.
func (c *commandContext) configPath() (string, error) {
	if c.configFlag != nil {
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			return config.ExpandPath(path)
		}
	}
	return config.DefaultPath()
}

func (c *commandContext) ensureConfig() (*config.Settings, error) {
	c.configOnce.Do(func() {
		path, err := c.configPath()
		if err != nil {
			c.configErr = err
			return
		}
		c.config, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}
