package textutils

import (
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Hit is one occurrence of a catalog label on a line.
type Hit struct {
	Label    string
	Priority int // index of the label in the catalog
	Start    int // byte offset of the occurrence
	End      int
}

// LabelScanner finds occurrences of a fixed, ordered label catalog in lines.
// An Aho-Corasick automaton selects the labels present on a line in a single
// pass; offsets are then located per label. A LabelScanner is not safe for
// concurrent use.
type LabelScanner struct {
	labels  []string
	matcher *ahocorasick.Matcher
}

// NewLabelScanner builds a scanner over labels. Empty labels are ignored.
func NewLabelScanner(labels []string) *LabelScanner {
	kept := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != "" {
			kept = append(kept, l)
		}
	}
	s := &LabelScanner{labels: kept}
	if len(kept) > 0 {
		patterns := make([][]byte, len(kept))
		for i, l := range kept {
			patterns[i] = []byte(l)
		}
		s.matcher = ahocorasick.NewMatcher(patterns)
	}
	return s
}

// Present returns the catalog indexes of labels occurring in line, ascending.
func (s *LabelScanner) Present(line string) []int {
	if s.matcher == nil || line == "" {
		return nil
	}
	idx := s.matcher.Match([]byte(line))
	sort.Ints(idx)
	return idx
}

// Occurrences returns every occurrence of every catalog label on line,
// ordered by catalog priority and then by offset.
func (s *LabelScanner) Occurrences(line string) []Hit {
	var hits []Hit
	for _, i := range s.Present(line) {
		label := s.labels[i]
		for from := 0; from <= len(line)-len(label); {
			pos := strings.Index(line[from:], label)
			if pos < 0 {
				break
			}
			start := from + pos
			hits = append(hits, Hit{Label: label, Priority: i, Start: start, End: start + len(label)})
			from = start + 1
		}
	}
	return hits
}

// Overlaps reports whether h shares any byte with one of spans.
func (h Hit) Overlaps(spans []Hit) bool {
	for _, sp := range spans {
		if h.Start < sp.End && sp.Start < h.End {
			return true
		}
	}
	return false
}
