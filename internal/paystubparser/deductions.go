package paystubparser

import (
	"regexp"
	"sort"
	"strings"

	"fjacquet/paystub-csv/internal/amount"
	"fjacquet/paystub-csv/internal/models"
	"fjacquet/paystub-csv/internal/textutils"
)

const (
	esppLabel           = "Espp"
	esppRefund          = "Espp Refund"
	socialSecurityLabel = "Social Security Tax"
	// esppLookahead is the width of the text window inspected after "Espp".
	esppLookahead = 16
)

var (
	esppDateAfter   = regexp.MustCompile(`^\s+\d+/`)
	esppAmountAfter = regexp.MustCompile(`^\s+\d+\s+\d+`)
)

// DeductionsParser extracts taxes and benefit deductions from any line of
// the document that carries a known deduction label.
type DeductionsParser struct {
	scanner       *textutils.LabelScanner
	benefitStyle  map[string]bool
	ytdWhenSingle map[string]bool
}

// NewDeductionsParser builds a parser over the layout's deduction catalogs.
func NewDeductionsParser(layout models.Layout) *DeductionsParser {
	return &DeductionsParser{
		scanner:       textutils.NewLabelScanner(layout.DeductionLabels),
		benefitStyle:  models.Set(layout.BenefitStyleDeductions),
		ytdWhenSingle: models.Set(layout.YTDWhenSingle),
	}
}

// Name implements parser.SectionParser.
func (p *DeductionsParser) Name() string { return "deductions" }

// deductionState is the per-document state of a deductions pass.
type deductionState struct {
	fields map[string]string
	// ytdOnly is latched by a sentinel phrase or by a benefit-style
	// deduction reported with a year-to-date amount only.
	ytdOnly bool
}

func (s *deductionState) seen(label string) bool {
	name := models.FieldName(models.CategoryDeductions, label)
	_, current := s.fields[name]
	_, ytd := s.fields[models.YTDName(name)]
	return current || ytd
}

// Parse implements parser.SectionParser.
func (p *DeductionsParser) Parse(text string) map[string]string {
	state := &deductionState{fields: make(map[string]string)}
	for _, line := range textutils.Lines(text) {
		if isYTDSentinel(line) {
			state.ytdOnly = true
		}
		for _, hit := range p.acceptedHits(line) {
			p.apply(state, hit.Label, line[hit.End:])
		}
	}
	return state.fields
}

func isYTDSentinel(line string) bool {
	return strings.Contains(line, "Other Benefits and") ||
		strings.Contains(strings.ToLower(line), "this period total to date")
}

// acceptedHits picks, for each label in catalog order, its first occurrence
// that does not overlap an occurrence already taken by an earlier label and,
// for Espp, that reads as a deduction. The result is ordered by position.
//
// Shadowing is per occurrence, not per line: on
// "Ad&D Spouse -1 00 2 00 Ad&D -3 00 4 00" the standalone Ad&D still fires,
// while the Ad&D inside "Ad&D Spouse" does not.
func (p *DeductionsParser) acceptedHits(line string) []textutils.Hit {
	occurrences := p.scanner.Occurrences(line)
	if len(occurrences) == 0 {
		return nil
	}

	var claimed []textutils.Hit
	taken := make(map[int]bool)
	for _, hit := range occurrences {
		if taken[hit.Priority] || hit.Overlaps(claimed) {
			continue
		}
		if hit.Label == esppLabel && !esppIsDeduction(line, hit.Start) {
			continue
		}
		claimed = append(claimed, hit)
		taken[hit.Priority] = true
	}

	sort.SliceStable(claimed, func(i, j int) bool {
		return claimed[i].Start < claimed[j].Start
	})
	return claimed
}

// esppIsDeduction rejects "Espp Refund", "Espp <date>" benefit windows and
// "Espp <positive amount>" benefit totals.
func esppIsDeduction(line string, pos int) bool {
	if strings.HasPrefix(line[pos:], esppRefund) {
		return false
	}
	start := pos + len(esppLabel)
	end := start + esppLookahead
	if end > len(line) {
		end = len(line)
	}
	after := line[start:end]
	if esppDateAfter.MatchString(after) || esppAmountAfter.MatchString(after) {
		return false
	}
	return true
}

// apply records the amounts that follow one accepted label occurrence.
func (p *DeductionsParser) apply(state *deductionState, label, rest string) {
	if state.seen(label) {
		return
	}

	current, ytd := amount.Pair(rest)
	if current != "" && ytd == "" {
		switch {
		case label == socialSecurityLabel && !strings.HasPrefix(current, "-"):
			current, ytd = "", current
		case p.ytdWhenSingle[label]:
			current, ytd = "", current
		case p.benefitStyle[label] && (state.ytdOnly || !state.seen(label)):
			current, ytd = "", current
		}
	}

	name := models.FieldName(models.CategoryDeductions, label)
	if current != "" {
		state.fields[name] = current
	}
	if ytd != "" {
		state.fields[models.YTDName(name)] = ytd
	}

	if p.benefitStyle[label] && ytd != "" && current == "" {
		state.ytdOnly = true
	}
}
