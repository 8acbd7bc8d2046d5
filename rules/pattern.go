package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PatternKind distinguishes the matching strategy required for a pattern.
type PatternKind int

const (
	PatternExact    PatternKind = iota // case-insensitive name equality
	PatternRegex                       // delimited regex: /body/
	PatternWildcard                    // the literal *
)

// Pattern is a parsed match spec. Classification and regex compilation
// happen once here; matching afterwards is allocation-free.
type Pattern struct {
	Raw  string
	Kind PatternKind
	Body string // regex body, only set for PatternRegex

	re *regexp.Regexp
}

// matchAnything backs the wildcard pattern: * is rewritten to a
// match-anything regex before evaluation.
var matchAnything = regexp.MustCompile(`(?i).*`)

// ParsePattern classifies a raw match spec. The wildcard * matches any
// name. A spec wrapped in the same non-word character at both ends, with a
// non-empty body, is a case-insensitive regex over the body. Everything
// else is an exact name. Only the regex form can fail.
func ParsePattern(raw string) (*Pattern, error) {
	if raw == "*" {
		return &Pattern{Raw: raw, Kind: PatternWildcard, re: matchAnything}, nil
	}
	if body, ok := regexBody(raw); ok {
		re, err := regexp.Compile("(?i)" + body)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", raw, err)
		}
		return &Pattern{Raw: raw, Kind: PatternRegex, Body: body, re: re}, nil
	}
	return &Pattern{Raw: raw, Kind: PatternExact}, nil
}

// regexBody reports whether the spec has the delimited-regex shape. The
// only delimiter check is "same non-word rune at both ends": mismatched
// delimiters and one-rune specs fall through to exact matching.
func regexBody(raw string) (string, bool) {
	first, fw := utf8.DecodeRuneInString(raw)
	last, lw := utf8.DecodeLastRuneInString(raw)
	if fw == 0 || lw == 0 || len(raw) < fw+lw {
		return "", false
	}
	if first != last || isWordRune(first) {
		return "", false
	}
	body := raw[fw : len(raw)-lw]
	if body == "" {
		return "", false
	}
	return body, true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Match reports whether name satisfies the pattern. On success it also
// returns the matched label: the literal * for the wildcard, the regex body
// for delimited patterns, and the pattern text itself for exact matches.
func (p *Pattern) Match(name string) (string, bool) {
	switch p.Kind {
	case PatternWildcard:
		return "*", true
	case PatternRegex:
		if p.re.MatchString(name) {
			return p.Body, true
		}
	default:
		if strings.EqualFold(p.Raw, name) {
			return p.Raw, true
		}
	}
	return "", false
}

// MatchName parses pattern ad hoc and matches it against name.
// Unparseable patterns never match.
func MatchName(pattern, name string) (string, bool) {
	p, err := ParsePattern(pattern)
	if err != nil {
		return "", false
	}
	return p.Match(name)
}
