package core

import (
	"strings"

	"github.com/tidwall/match"
)

// Pattern is a compiled wildcard expression anchored to the whole value:
// '*' matches any run of characters (including none), '?' exactly one,
// everything else matches itself.
type Pattern struct {
	raw      string
	compiled string
}

// CompilePattern prepares p for matching. The matcher treats a backslash as an
// escape, so literal backslashes are doubled to keep them literal.
func CompilePattern(p string) Pattern {
	return Pattern{
		raw:      p,
		compiled: strings.ReplaceAll(p, `\`, `\\`),
	}
}

// Match reports whether value matches the pattern in full.
func (p Pattern) Match(value string) bool {
	return match.Match(value, p.compiled)
}

// IsWildcard reports whether the pattern contains any wildcard token.
func (p Pattern) IsWildcard() bool {
	return strings.ContainsAny(p.raw, "*?")
}

func (p Pattern) String() string {
	return p.raw
}
