package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Level is the ordinal severity of notification-worthy activity. 1 is the
// least disruptive ("all" activity surfaces), 4 the most ("none" surfaces).
// Event payloads may additionally carry 0, meaning no activity at all.
type Level int

const (
	LevelAll      Level = 1
	LevelMessages Level = 2
	LevelHilights Level = 3
	LevelNone     Level = 4
)

// levelNames is the single source of truth for the keyword <-> rank
// mapping. Index-correlated: levelNames[0] is rank 1.
var levelNames = [4]string{"all", "messages", "hilights", "none"}

// ErrInvalidLevel reports a level outside the representable 1-4 range.
var ErrInvalidLevel = errors.New("invalid activity level")

// ParseLevel converts a level spec to a Level. Digit strings are taken
// as-is (the 1-4 range is assumed, not enforced here). Keywords match
// case-insensitively, most specific first. Anything unrecognized decays to
// LevelAll: a rule file with a typo keeps loading, the rule just stops
// suppressing anything.
func ParseLevel(spec string) Level {
	if n, err := strconv.Atoi(spec); err == nil {
		return Level(n)
	}
	for i := len(levelNames) - 1; i >= 0; i-- {
		if strings.EqualFold(spec, levelNames[i]) {
			return Level(i + 1)
		}
	}
	return LevelAll
}

// Keyword returns the keyword form of a level. Only 1-4 are representable;
// anything else is a programming error surfaced as ErrInvalidLevel.
func Keyword(l Level) (string, error) {
	if l < LevelAll || l > LevelNone {
		return "", fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}
	return levelNames[l-1], nil
}

// Spec renders a level in the form rule files use: the keyword when the
// level is representable, the bare number otherwise.
func Spec(l Level) string {
	kw, err := Keyword(l)
	if err != nil {
		return strconv.Itoa(int(l))
	}
	return kw
}
