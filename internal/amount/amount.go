// Package amount recognizes the space-fragmented monetary amounts printed on
// paystubs ("1 234 56" for 1234.56) and converts them to canonical decimal strings.
package amount

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// shape is one accepted token layout for an amount.
type shape struct {
	tokens  int
	pattern *regexp.Regexp
}

// shapes are tried longest first; the first match wins.
var shapes = []shape{
	{tokens: 4, pattern: regexp.MustCompile(`^-?\d{1,4}\s\d{3}\s\d{3}\s\d{2}\*?$`)},
	{tokens: 3, pattern: regexp.MustCompile(`^-?\d{1,4}\s\d{3}\s\d{2}\*?$`)},
	{tokens: 2, pattern: regexp.MustCompile(`^-?\d{1,4}\s\d{2}\*?$`)},
	{tokens: 1, pattern: regexp.MustCompile(`^-?\d{2}\*?$`)},
}

var canonicalPattern = regexp.MustCompile(`^-?\d+\.\d{2}$`)

// Lex tries to read one amount starting at tokens[start]. It returns the
// canonical amount and the number of tokens consumed, or ok=false when no
// shape matches at that position.
func Lex(tokens []string, start int) (value string, consumed int, ok bool) {
	if start < 0 || start >= len(tokens) {
		return "", 0, false
	}
	for _, s := range shapes {
		end := start + s.tokens
		if end > len(tokens) {
			continue
		}
		joined := strings.Join(tokens[start:end], " ")
		if s.pattern.MatchString(joined) {
			return Canonicalize(joined), s.tokens, true
		}
	}
	return "", 0, false
}

// LexAll reads amounts from the start of tokens, advancing past each one.
// A single unrecognized token between amounts is tolerated; two in a row end
// the scan.
func LexAll(tokens []string) []string {
	var amounts []string
	misses := 0
	for i := 0; i < len(tokens); {
		if value, n, ok := Lex(tokens, i); ok {
			amounts = append(amounts, value)
			i += n
			misses = 0
			continue
		}
		misses++
		if misses >= 2 {
			break
		}
		i++
	}
	return amounts
}

// First scans tokens left to right, skipping anything that is not an amount,
// and returns the first amount found together with the index just past it.
func First(tokens []string) (value string, end int, ok bool) {
	for i := range tokens {
		if value, n, ok := Lex(tokens, i); ok {
			return value, i + n, true
		}
	}
	return "", 0, false
}

// Pair returns the first amount in the text and, when another amount follows
// immediately after it, that second amount. Either may be empty.
func Pair(text string) (first, second string) {
	tokens := strings.Fields(text)
	first, end, ok := First(tokens)
	if !ok {
		return "", ""
	}
	second, _, _ = Lex(tokens, end)
	return first, second
}

// Leading lexes an amount at the very start of text.
func Leading(text string) (string, bool) {
	value, _, ok := Lex(strings.Fields(text), 0)
	return value, ok
}

// Canonicalize turns a matched amount ("-1 234 56*") into "-1234.56".
// The last two digits are cents. A leading minus is kept even on zero.
func Canonicalize(raw string) string {
	raw = strings.TrimSpace(raw)
	negative := strings.HasPrefix(raw, "-")

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}

	d, err := decimal.NewFromString(digits.String())
	if err != nil {
		return ""
	}
	s := d.Shift(-2).StringFixed(2)
	if negative {
		return "-" + s
	}
	return s
}

// IsCanonical reports whether s has the form -?INT.FF.
func IsCanonical(s string) bool {
	return canonicalPattern.MatchString(s)
}

// Parse converts a record value to a decimal. Surrounding spaces are ignored.
func Parse(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", s, err)
	}
	return d, nil
}

// Format renders d in canonical two-decimal form.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Decreased reports whether current is lower than previous by more than tolerance.
func Decreased(previous, current, tolerance decimal.Decimal) bool {
	return current.LessThan(previous.Sub(tolerance))
}
