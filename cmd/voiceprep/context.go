package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"voiceprep/internal/config"
	"voiceprep/internal/logging"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.applyLogOverrides(cfg)
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) applyLogOverrides(cfg *config.Config) {
	if c.logLevelFlag != nil {
		if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
			cfg.Logging.Level = level
		}
	}
	if c.logFormatFlag != nil {
		if format := strings.ToLower(strings.TrimSpace(*c.logFormatFlag)); format != "" {
			cfg.Logging.Format = format
		}
	}
}

// newLogger builds the command logger: stderr plus a rotated voiceprep.log
// under paths.log_dir.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
