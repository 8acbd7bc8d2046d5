package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"actfilter/rules"
)

func TestWildcardMatchesAnything(t *testing.T) {
	p, err := rules.ParsePattern("*")
	require.NoError(t, err)
	require.Equal(t, rules.PatternWildcard, p.Kind)

	for _, name := range []string{"#channel", "somebot", "x"} {
		label, ok := p.Match(name)
		require.True(t, ok, "name %q", name)
		require.Equal(t, "*", label)
	}
}

func TestRegexPattern(t *testing.T) {
	p, err := rules.ParsePattern("/^#foo/")
	require.NoError(t, err)
	require.Equal(t, rules.PatternRegex, p.Kind)
	require.Equal(t, "^#foo", p.Body)

	label, ok := p.Match("#foobar")
	require.True(t, ok)
	require.Equal(t, "^#foo", label)

	// case-insensitive
	_, ok = p.Match("#Foobar")
	require.True(t, ok)

	_, ok = p.Match("xyz")
	require.False(t, ok)
}

func TestRegexAlternateDelimiter(t *testing.T) {
	p, err := rules.ParsePattern("%^#dev-%")
	require.NoError(t, err)
	require.Equal(t, rules.PatternRegex, p.Kind)

	_, ok := p.Match("#dev-infra")
	require.True(t, ok)
}

func TestExactPattern(t *testing.T) {
	p, err := rules.ParsePattern("somebot")
	require.NoError(t, err)
	require.Equal(t, rules.PatternExact, p.Kind)

	label, ok := p.Match("SomeBot")
	require.True(t, ok)
	require.Equal(t, "somebot", label)

	_, ok = p.Match("somebot2")
	require.False(t, ok)
}

// Patterns that are almost, but not quite, delimited regexes stay exact.
func TestDelimiterEdgeCases(t *testing.T) {
	for _, raw := range []string{
		"/",     // single delimiter rune
		"//",    // empty body
		"/abc%", // mismatched delimiters
		"_abc_", // underscore is a word rune, not a delimiter
		"a.b.c", // word rune at the ends
	} {
		p, err := rules.ParsePattern(raw)
		require.NoError(t, err, "raw %q", raw)
		require.Equal(t, rules.PatternExact, p.Kind, "raw %q", raw)
	}
}

func TestInvalidRegexIsAnError(t *testing.T) {
	_, err := rules.ParsePattern("/[/")
	require.Error(t, err)
}

func TestMatchName(t *testing.T) {
	label, ok := rules.MatchName("*", "#random")
	require.True(t, ok)
	require.Equal(t, "*", label)

	_, ok = rules.MatchName("/[/", "anything")
	require.False(t, ok)

	label, ok = rules.MatchName("channel", "channel")
	require.True(t, ok)
	require.Equal(t, "channel", label)
}
