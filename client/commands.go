package client

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"actfilter/config"
	"actfilter/engine"
	"actfilter/rules"
	"actfilter/settings"
)

// Commands implements the interactive command surface over a running
// engine. Out receives ordinary command output; errors are returned for
// the caller to report on the diagnostic channel.
type Commands struct {
	Engine  *engine.Engine
	Config  *config.Manager
	Store   *settings.Store // may be nil when embedded without a store
	Host    Host
	Session *Session // nil when embedded in a real client
	Out     io.Writer
}

// Run dispatches one tokenized command line.
func (c *Commands) Run(args []string) error {
	if len(args) == 0 {
		return c.help()
	}
	switch args[0] {
	case "list":
		return c.list()
	case "query":
		return c.query(args[1:])
	case "show":
		return c.show(args[1:])
	case "load", "reload":
		return c.Engine.Reload()
	case "save":
		return rules.Save(c.Config.Get().Rules.File, c.Engine.Table())
	case "set":
		return c.set(args[1:])
	case "event":
		return c.event(args[1:])
	case "help":
		return c.help()
	default:
		return fmt.Errorf("unknown command %q (try help)", args[0])
	}
}

var listOrder = []rules.Kind{rules.KindWindow, rules.KindChannel, rules.KindQuery}

func (c *Commands) list() error {
	table := c.Engine.Table()
	for _, kind := range listOrder {
		rs := table.Rules(kind)
		fmt.Fprintf(c.Out, "%s rules:\n", kind)
		if len(rs) == 0 {
			fmt.Fprintln(c.Out, "  (none)")
			continue
		}
		for i, r := range rs {
			fmt.Fprintf(c.Out, "  %2d. %-24s %s\n", i+1, r.Pattern.Raw, r.Level)
		}
	}
	return nil
}

func (c *Commands) query(args []string) error {
	kinds, names, err := parseKindArgs(args)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("query: at least one name required")
	}
	if len(kinds) == 0 {
		kinds = []rules.Kind{rules.KindChannel}
	}
	for _, name := range names {
		for _, kind := range kinds {
			fmt.Fprintf(c.Out, "%s %s: %s\n", kind, name, levelText(c.resolve(kind, name)))
		}
	}
	return nil
}

func (c *Commands) show(args []string) error {
	kinds, rest, err := parseKindArgs(args)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return fmt.Errorf("show: unexpected argument %q", rest[0])
	}
	if len(kinds) == 0 {
		kinds = listOrder
	}
	selected := make(map[rules.Kind]bool, len(kinds))
	for _, k := range kinds {
		selected[k] = true
	}

	if selected[rules.KindWindow] {
		for _, w := range c.Host.Windows() {
			fmt.Fprintf(c.Out, "window %s (ref %d): %s\n",
				displayName(w.Name), w.Ref, levelText(c.Engine.ResolveWindow(w.Name)))
		}
	}
	for _, it := range c.Host.Items() {
		if !selected[it.Kind] {
			continue
		}
		fmt.Fprintf(c.Out, "%s %s: %s\n",
			it.Kind, it.Name, levelText(c.Engine.ResolveItem(it.Kind, it.Name)))
	}
	return nil
}

func (c *Commands) set(args []string) error {
	if c.Store == nil {
		return errors.New("set: no settings store attached")
	}
	switch len(args) {
	case 0:
		values, err := c.Store.All()
		if err != nil {
			return err
		}
		if len(values) == 0 {
			fmt.Fprintln(c.Out, "no settings overridden")
			return nil
		}
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(c.Out, "%s = %s\n", k, values[k])
		}
		return nil
	case 2:
		key, value := args[0], args[1]
		if !settings.IsKnown(key) {
			return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(settings.KnownKeys, ", "))
		}
		if err := c.Store.Set(key, value); err != nil {
			return err
		}
		if err := settings.Apply(c.Store, c.Config); err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "%s = %s\n", key, value)
		return nil
	default:
		return errors.New("usage: set [<key> <value>]")
	}
}

func (c *Commands) event(args []string) error {
	if len(args) == 1 && args[0] == "bell" {
		c.printVerdict(c.Engine.HandleBell())
		return nil
	}
	if len(args) != 5 {
		return errors.New("usage: event <window|channel|query> <name> <windowRef> <old> <new>, or event bell")
	}
	ref, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("event: bad window ref %q", args[2])
	}
	name := args[1]
	oldLevel := rules.ParseLevel(args[3])
	newLevel := rules.ParseLevel(args[4])

	var v engine.Verdict
	switch args[0] {
	case "window":
		v = c.Engine.HandleWindowLevel(engine.WindowEvent{
			Name: name, Ref: ref, OldLevel: oldLevel, NewLevel: newLevel,
		})
		if c.Session != nil {
			c.Session.RecordWindow(ref, name, effectiveLevel(v, oldLevel, newLevel))
		}
	case "channel", "query":
		kind := rules.KindChannel
		if args[0] == "query" {
			kind = rules.KindQuery
		}
		v = c.Engine.HandleItemLevel(engine.ItemEvent{
			Kind: kind, Name: name, WindowRef: ref, OldLevel: oldLevel, NewLevel: newLevel,
		})
		if c.Session != nil {
			c.Session.RecordItem(kind, name, ref, effectiveLevel(v, oldLevel, newLevel))
			c.Session.RecordWindow(ref, "", 0)
		}
	default:
		return fmt.Errorf("event: unknown kind %q", args[0])
	}
	c.printVerdict(v)
	return nil
}

func (c *Commands) printVerdict(v engine.Verdict) {
	outcome := "pass"
	if v.Suppress {
		outcome = "suppress"
	}
	fmt.Fprintf(c.Out, "%s (%s)", outcome, v.Reason)
	if v.CancelEvent {
		fmt.Fprint(c.Out, " [cancel event]")
	}
	if v.RevertWindowRef != 0 {
		fmt.Fprintf(c.Out, " [revert window %d]", v.RevertWindowRef)
	}
	fmt.Fprintln(c.Out)
}

func (c *Commands) help() error {
	fmt.Fprint(c.Out, usage)
	return nil
}

const usage = `actfilter commands:
  list                     show all rules per kind
  query <name...> [-window|-channel|-query]
                           resolved threshold per name (default: channel)
  show [-window|-channel|-query]
                           resolved threshold for every live entity
  load | reload            re-read the rule file
  save                     write rules back (not implemented)
  set [<key> <value>]      list or persist settings overrides
  event <kind> <name> <windowRef> <old> <new>
                           feed a simulated level change (kind: window,
                           channel, query) and print the decision
  event bell               feed a pending alert tone
  help                     this text
`

func (c *Commands) resolve(kind rules.Kind, name string) rules.Level {
	if kind == rules.KindWindow {
		return c.Engine.ResolveWindow(name)
	}
	return c.Engine.ResolveItem(kind, name)
}

// parseKindArgs splits -window/-channel/-query flags from positional args.
func parseKindArgs(args []string) (kinds []rules.Kind, rest []string, err error) {
	for _, a := range args {
		switch a {
		case "-window", "--window":
			kinds = append(kinds, rules.KindWindow)
		case "-channel", "--channel":
			kinds = append(kinds, rules.KindChannel)
		case "-query", "--query":
			kinds = append(kinds, rules.KindQuery)
		default:
			if strings.HasPrefix(a, "-") {
				return nil, nil, fmt.Errorf("unknown option %q", a)
			}
			rest = append(rest, a)
		}
	}
	return kinds, rest, nil
}

func levelText(l rules.Level) string {
	return fmt.Sprintf("%s (%d)", rules.Spec(l), int(l))
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

// effectiveLevel is the level an entity ends up displaying: the new level
// when the event passed, the old one when it was suppressed or reverted.
func effectiveLevel(v engine.Verdict, old, new rules.Level) rules.Level {
	if v.Suppress {
		return old
	}
	return new
}
