package engine

import (
	"sync"

	"go.uber.org/zap"

	"actfilter/config"
	"actfilter/rules"
)

// ItemEvent is a level change on a conversation item (a channel or a
// private conversation).
type ItemEvent struct {
	Kind      rules.Kind // KindChannel or KindQuery
	Name      string
	WindowRef int // reference id of the owning window
	OldLevel  rules.Level
	NewLevel  rules.Level
}

// WindowEvent is a level change on a window.
type WindowEvent struct {
	Name     string // may be empty for unnamed windows
	Ref      int
	OldLevel rules.Level
	NewLevel rules.Level
}

// Verdict is the engine's decision for one event, expressed as the side
// effects the host should perform. CancelEvent maps to the host's "stop
// further processing" primitive, RevertWindowRef to its force-dehilight
// primitive (0 means no revert).
type Verdict struct {
	Suppress        bool
	CancelEvent     bool
	RevertWindowRef int
	Reason          string
}

// cycleState carries the item-level outcome into the window-level handler
// of the same event cycle. The host dispatches item events before window
// events and never reenters the engine, so this state is intentionally
// unguarded.
type cycleState struct {
	muteBell  bool // the next pending alert tone is swallowed too
	revertRef int  // window (by ref) whose pending hilight must be reverted
	traced    bool // a diagnostic trace was just emitted
}

// Engine decides whether activity events may surface to the user.
type Engine struct {
	cfg *config.Manager
	log *zap.Logger

	// Reloads may arrive from the watcher or cron goroutines while the
	// host thread resolves thresholds, hence the lock around the swap.
	tableMu sync.RWMutex
	table   *rules.Table

	cycle cycleState
}

// New creates an engine with an empty rule table. Call Reload to read the
// configured rule file.
func New(cfg *config.Manager, log *zap.Logger) *Engine {
	return &Engine{cfg: cfg, log: log, table: &rules.Table{}}
}

// Reload re-reads the rule file and atomically swaps the table in whole.
// On failure the previous table stays in effect.
func (e *Engine) Reload() error {
	c := e.cfg.Get()
	def := rules.Defaults{
		Window:  rules.Level(c.Defaults.Window),
		Channel: rules.Level(c.Defaults.Channel),
		Query:   rules.Level(c.Defaults.Query),
	}
	table, skipped, err := rules.Load(c.Rules.File, def)
	if err != nil {
		e.log.Error("rule reload failed, keeping previous rules",
			zap.String("file", c.Rules.File), zap.Error(err))
		return err
	}
	if skipped > 0 {
		e.log.Warn("skipped malformed rule lines",
			zap.Int("lines", skipped), zap.String("file", c.Rules.File))
	}

	e.tableMu.Lock()
	e.table = table
	e.tableMu.Unlock()

	e.log.Info("rules loaded",
		zap.String("file", c.Rules.File),
		zap.Int("window", len(table.Windows)),
		zap.Int("channel", len(table.Channels)),
		zap.Int("query", len(table.Queries)))
	return nil
}

// Table returns the current rule table.
func (e *Engine) Table() *rules.Table {
	e.tableMu.RLock()
	defer e.tableMu.RUnlock()
	return e.table
}

// HandleItemLevel evaluates an item's level change. A raise below the
// item's threshold is suppressed: the event is canceled, the next alert
// tone is muted, and the owning window is marked for a forced revert when
// its own level-change event follows.
func (e *Engine) HandleItemLevel(ev ItemEvent) Verdict {
	if ev.NewLevel <= ev.OldLevel {
		return Verdict{Reason: "level not raised"}
	}
	e.cycle = cycleState{}

	threshold := e.ResolveItem(ev.Kind, ev.Name)

	// Level 0 means no activity at all; it never counts as below
	// threshold even though the bare comparison would say so.
	if ev.NewLevel > 0 && ev.NewLevel < threshold {
		e.cycle.muteBell = true
		e.cycle.revertRef = ev.WindowRef
		e.traceDecision("item", ev.Name, ev.OldLevel, ev.NewLevel, threshold, true)
		return Verdict{Suppress: true, CancelEvent: true, Reason: "below item threshold"}
	}
	e.traceDecision("item", ev.Name, ev.OldLevel, ev.NewLevel, threshold, false)
	return Verdict{Reason: "at or above item threshold"}
}

// HandleWindowLevel evaluates a window's level change. It runs after the
// item-level handler of the same cycle and consumes whatever that handler
// left behind.
func (e *Engine) HandleWindowLevel(ev WindowEvent) Verdict {
	// The engine's own trace output can raise window activity. Revert it
	// before it reaches the user; single-shot so genuine activity on the
	// next event is not masked.
	if e.cycle.traced {
		e.cycle.traced = false
		return Verdict{Suppress: true, RevertWindowRef: ev.Ref, Reason: "engine trace output"}
	}
	if e.cycle.revertRef != 0 && e.cycle.revertRef == ev.Ref {
		e.cycle.revertRef = 0
		return Verdict{Suppress: true, RevertWindowRef: ev.Ref, Reason: "item already suppressed"}
	}
	if ev.NewLevel <= ev.OldLevel {
		return Verdict{Reason: "level not raised"}
	}

	threshold := e.ResolveWindow(ev.Name)
	if ev.NewLevel > 0 && ev.NewLevel < threshold {
		e.traceDecision("window", ev.Name, ev.OldLevel, ev.NewLevel, threshold, true)
		return Verdict{Suppress: true, CancelEvent: true, RevertWindowRef: ev.Ref, Reason: "below window threshold"}
	}
	e.traceDecision("window", ev.Name, ev.OldLevel, ev.NewLevel, threshold, false)
	return Verdict{Reason: "at or above window threshold"}
}

// HandleBell decides whether a pending alert tone may sound. The mute flag
// raised by an item suppression stays up until the next item evaluation
// resets the cycle, so a bell arriving anywhere in the same cycle is
// swallowed with the activity that caused it.
func (e *Engine) HandleBell() Verdict {
	if e.cycle.muteBell {
		return Verdict{Suppress: true, CancelEvent: true, Reason: "alert for suppressed activity"}
	}
	return Verdict{}
}

func (e *Engine) traceDecision(scope, name string, old, new, threshold rules.Level, suppressed bool) {
	if !e.cfg.Get().Debug {
		return
	}
	outcome := "pass"
	if suppressed {
		outcome = "inhibit"
	}
	e.log.Debug("decision",
		zap.String("scope", scope),
		zap.String("name", name),
		zap.Int("old", int(old)),
		zap.Int("new", int(new)),
		zap.Int("threshold", int(threshold)),
		zap.String("outcome", outcome))
	e.cycle.traced = true
}
