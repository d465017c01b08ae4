package textutils

import "strings"

// Wildcard is the single wildcard token of a TokenGlob.
const Wildcard = "*"

// TokenGlob is a whitespace-token pattern with at most one "*" token. The
// wildcard matches one or more tokens; every other token matches itself.
type TokenGlob struct {
	raw    string
	before []string
	after  []string
	star   bool
}

// CompileGlob parses pattern. Only the first "*" token is a wildcard; later
// ones are literal.
func CompileGlob(pattern string) TokenGlob {
	tokens := strings.Fields(pattern)
	g := TokenGlob{raw: pattern}
	for i, tok := range tokens {
		if tok == Wildcard {
			g.star = true
			g.before = tokens[:i]
			g.after = tokens[i+1:]
			return g
		}
	}
	g.before = tokens
	return g
}

// IsGlob reports whether pattern contains a wildcard token.
func IsGlob(pattern string) bool {
	for _, tok := range strings.Fields(pattern) {
		if tok == Wildcard {
			return true
		}
	}
	return false
}

// String returns the source pattern.
func (g TokenGlob) String() string {
	return g.raw
}

// HasWildcard reports whether the glob contains a wildcard.
func (g TokenGlob) HasWildcard() bool {
	return g.star
}

// Match reports whether candidate matches the glob token by token.
func (g TokenGlob) Match(candidate string) bool {
	_, ok := g.Capture(candidate)
	return ok
}

// Capture matches candidate and returns the tokens covered by the wildcard,
// joined with single spaces. A glob without a wildcard captures "".
func (g TokenGlob) Capture(candidate string) (string, bool) {
	tokens := strings.Fields(candidate)
	if !g.star {
		return "", equalTokens(tokens, g.before)
	}
	fixed := len(g.before) + len(g.after)
	if len(tokens) < fixed+1 {
		return "", false
	}
	if !equalTokens(tokens[:len(g.before)], g.before) {
		return "", false
	}
	if !equalTokens(tokens[len(tokens)-len(g.after):], g.after) {
		return "", false
	}
	return strings.Join(tokens[len(g.before):len(tokens)-len(g.after)], " "), true
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
