package engine

import (
	"fmt"

	"go.uber.org/zap"

	"actfilter/rules"
)

// ResolveItem returns the threshold for a channel or private conversation:
// the level of the first matching rule, or the kind's configured fallback.
// Passing a non-item kind is a programming error.
func (e *Engine) ResolveItem(kind rules.Kind, name string) rules.Level {
	if kind != rules.KindChannel && kind != rules.KindQuery {
		panic(fmt.Sprintf("engine: item threshold requested for kind %v", kind))
	}
	return e.resolve(kind, name)
}

// ResolveWindow returns the threshold for a window, by window name.
func (e *Engine) ResolveWindow(name string) rules.Level {
	return e.resolve(rules.KindWindow, name)
}

func (e *Engine) resolve(kind rules.Kind, name string) rules.Level {
	if rule, label, ok := e.Table().Find(kind, name); ok {
		level := rule.Resolved()
		e.traceMatch(kind, name, label, level)
		return level
	}

	c := e.cfg.Get()
	switch kind {
	case rules.KindWindow:
		return rules.Level(c.Defaults.Window)
	case rules.KindChannel:
		return rules.Level(c.Defaults.Channel)
	case rules.KindQuery:
		return rules.Level(c.Defaults.Query)
	}
	// Unreachable: Table.Find already rejects unknown kinds.
	panic(fmt.Sprintf("engine: unknown entity kind %v", kind))
}

func (e *Engine) traceMatch(kind rules.Kind, name, label string, level rules.Level) {
	if !e.cfg.Get().Debug {
		return
	}
	e.log.Debug("rule match",
		zap.Stringer("kind", kind),
		zap.String("name", name),
		zap.String("rule", label),
		zap.Int("level", int(level)))
	e.cycle.traced = true
}
