package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"actfilter/rules"
)

func TestParseLevelKeywords(t *testing.T) {
	cases := map[string]rules.Level{
		"all":      rules.LevelAll,
		"ALL":      rules.LevelAll,
		"messages": rules.LevelMessages,
		"MeSsAgEs": rules.LevelMessages,
		"hilights": rules.LevelHilights,
		"none":     rules.LevelNone,
		"NONE":     rules.LevelNone,
	}
	for spec, want := range cases {
		require.Equal(t, want, rules.ParseLevel(spec), "spec %q", spec)
	}
}

func TestParseLevelNumeric(t *testing.T) {
	require.Equal(t, rules.Level(1), rules.ParseLevel("1"))
	require.Equal(t, rules.Level(3), rules.ParseLevel("3"))
	require.Equal(t, rules.Level(4), rules.ParseLevel("4"))
}

func TestParseLevelUnrecognizedDecaysToAll(t *testing.T) {
	require.Equal(t, rules.LevelAll, rules.ParseLevel("bogus"))
	require.Equal(t, rules.LevelAll, rules.ParseLevel(""))
	require.Equal(t, rules.LevelAll, rules.ParseLevel("nonsense"))
}

func TestKeyword(t *testing.T) {
	for l, want := range map[rules.Level]string{
		rules.LevelAll:      "all",
		rules.LevelMessages: "messages",
		rules.LevelHilights: "hilights",
		rules.LevelNone:     "none",
	} {
		kw, err := rules.Keyword(l)
		require.NoError(t, err)
		require.Equal(t, want, kw)
	}
}

func TestKeywordInvalid(t *testing.T) {
	for _, l := range []rules.Level{0, 5, -1, 42} {
		_, err := rules.Keyword(l)
		require.ErrorIs(t, err, rules.ErrInvalidLevel, "level %d", int(l))
	}
}

func TestLevelRoundTripIsIdempotent(t *testing.T) {
	for _, kw := range []string{"all", "messages", "hilights", "none"} {
		l := rules.ParseLevel(kw)
		kw2, err := rules.Keyword(l)
		require.NoError(t, err)
		require.Equal(t, l, rules.ParseLevel(kw2))
	}
}

func TestSpec(t *testing.T) {
	require.Equal(t, "messages", rules.Spec(rules.LevelMessages))
	require.Equal(t, "7", rules.Spec(rules.Level(7)))
}
