package config

// Config represents the top-level configuration structure.
type Config struct {
	Rules    RulesConfig    `yaml:"rules"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Debug    bool           `yaml:"debug,omitempty"` // enables decision/match traces
	Logging  LoggingConfig  `yaml:"logging"`
}

// RulesConfig locates the rule file and controls how it is refreshed.
type RulesConfig struct {
	File       string `yaml:"file"`                  // e.g. "rules.conf"
	Watch      bool   `yaml:"watch"`                 // reload when the file changes on disk
	ReloadCron string `yaml:"reload_cron,omitempty"` // optional cron spec for periodic reloads
}

// DefaultsConfig holds the fallback thresholds applied when no rule matches
// an entity. Values are activity levels, 1 ("all") through 4 ("none").
type DefaultsConfig struct {
	Window  int `yaml:"window"`
	Channel int `yaml:"channel"`
	Query   int `yaml:"query"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // console | json
}

// Normalize fills unset fields with their defaults. Fallback thresholds
// default to 1: with no rules and no configuration, nothing is suppressed.
func (c *Config) Normalize() {
	if c.Rules.File == "" {
		c.Rules.File = "rules.conf"
	}
	if c.Defaults.Window == 0 {
		c.Defaults.Window = 1
	}
	if c.Defaults.Channel == 0 {
		c.Defaults.Channel = 1
	}
	if c.Defaults.Query == 0 {
		c.Defaults.Query = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}
