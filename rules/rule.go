package rules

import "fmt"

// Kind identifies which rule list an entity resolves against.
type Kind int

const (
	KindWindow Kind = iota
	KindChannel
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindChannel:
		return "channel"
	case KindQuery:
		return "query"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rule pairs a parsed pattern with its level spec. The level stays in its
// textual form and is resolved when the rule matches, so numeric and
// keyword specs behave identically.
type Rule struct {
	Pattern *Pattern
	Level   string
}

// Resolved returns the rule's threshold level.
func (r Rule) Resolved() Level {
	return ParseLevel(r.Level)
}

// Table holds the three ordered rule lists. List order is file order and is
// the only tie-break: the first matching rule wins. Tables are rebuilt
// wholesale on reload, never edited in place.
type Table struct {
	Windows  []Rule
	Channels []Rule
	Queries  []Rule
}

// Rules returns the list for a kind. The kind set is closed; anything else
// is a programming error.
func (t *Table) Rules(k Kind) []Rule {
	switch k {
	case KindWindow:
		return t.Windows
	case KindChannel:
		return t.Channels
	case KindQuery:
		return t.Queries
	}
	panic(fmt.Sprintf("rules: unknown entity kind %d", int(k)))
}

// Find walks the list for kind in order and returns the first rule whose
// pattern matches name, along with the matched label.
func (t *Table) Find(k Kind, name string) (Rule, string, bool) {
	for _, r := range t.Rules(k) {
		if label, ok := r.Pattern.Match(name); ok {
			return r, label, true
		}
	}
	return Rule{}, "", false
}

// Len returns the total rule count across all three lists.
func (t *Table) Len() int {
	return len(t.Windows) + len(t.Channels) + len(t.Queries)
}
