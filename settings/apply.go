package settings

import (
	"actfilter/config"
	"actfilter/rules"
)

// Keys recognized by Apply. Anything else in the store is left alone but
// has no effect on the engine.
const (
	KeyRulesFile    = "rules_file"
	KeyDebug        = "debug"
	KeyWindowLevel  = "window_level"
	KeyChannelLevel = "channel_level"
	KeyQueryLevel   = "query_level"
)

// KnownKeys lists the keys Apply understands, for user-facing help.
var KnownKeys = []string{
	KeyChannelLevel,
	KeyDebug,
	KeyQueryLevel,
	KeyRulesFile,
	KeyWindowLevel,
}

// IsKnown reports whether key is one Apply understands.
func IsKnown(key string) bool {
	for _, k := range KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Apply overlays persisted overrides onto the current configuration. Level
// values accept the same specs as rule files (keywords or numbers). Callers
// re-run this after every Set; that is the whole "settings changed"
// refresh.
func Apply(s *Store, mgr *config.Manager) error {
	values, err := s.All()
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	mgr.Update(func(c *config.Config) {
		for key, value := range values {
			switch key {
			case KeyRulesFile:
				c.Rules.File = value
			case KeyDebug:
				c.Debug = value == "true" || value == "1" || value == "on"
			case KeyWindowLevel:
				c.Defaults.Window = int(rules.ParseLevel(value))
			case KeyChannelLevel:
				c.Defaults.Channel = int(rules.ParseLevel(value))
			case KeyQueryLevel:
				c.Defaults.Query = int(rules.ParseLevel(value))
			}
		}
	})
	return nil
}
