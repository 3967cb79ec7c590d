package config

import "log/slog"

// Context carries what the CLI resolved before a subcommand runs. The root
// command fills Config and Logger from ConfigPath in its pre-run hook.
type Context struct {
	ConfigPath string
	Config     *Config
	Logger     *slog.Logger
}

// Load reads and validates the configuration and builds the logger.
func (c *Context) Load() error {
	cfg, err := LoadConfig(c.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}

	c.Config = cfg
	c.Logger = logger
	return nil
}
