// Package dateutils recognizes and parses the M/D/YYYY dates printed on paystubs.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

// DateLayoutUS is the paystub date layout; month and day may be one or two digits.
const DateLayoutUS = "1/2/2006"

// DatePattern matches a paystub date fragment.
const DatePattern = `\d{1,2}/\d{1,2}/\d{4}`

var labeledDateCache sync.Map

// labeledDate returns the regexp for "<label>[:] <date>".
func labeledDate(label string) *regexp.Regexp {
	if re, ok := labeledDateCache.Load(label); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(regexp.QuoteMeta(label) + `:?\s*(` + DatePattern + `)`)
	labeledDateCache.Store(label, re)
	return re
}

// FindLabeledDate returns the first date that follows label in text, with or
// without a colon after the label. The date is returned verbatim.
func FindLabeledDate(text, label string) (string, bool) {
	m := labeledDate(label).FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// ParseDate parses a M/D/YYYY date.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	t, err := time.Parse(DateLayoutUS, cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
	}
	return t, nil
}

// ToISODate formats date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format("2006-01-02")
}
