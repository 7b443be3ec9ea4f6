package testgen

import (
	"fmt"
	"regexp"
	"strings"
)

// inlineMathRe matches bare superscript/subscript token runs such as
// Fe^{2+}, H_2O, SO_4^{2-} or M^{2+}/M that ought to be wrapped in
// $...$ delimiters.
var inlineMathRe = regexp.MustCompile(
	`[A-Za-z][A-Za-z0-9]*(?:[_^]\{[^}]+\}|[_^][0-9])[A-Za-z0-9_^{}+\-]*(?:/[A-Za-z][A-Za-z0-9_^{}+\-]*)*`)

// fixUnwrappedLatex wraps unwrapped inline math in $...$. Runs already
// inside a math block (odd count of "$" before the match) or directly
// adjacent to "$" or "}" are left alone.
func fixUnwrappedLatex(text string) string {
	if text == "" || !strings.ContainsAny(text, "^_\\") {
		return text
	}

	matches := inlineMathRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 4*len(matches))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(text[last:start])
		seg := text[start:end]

		wrap := true
		if start > 0 && text[start-1] == '$' {
			wrap = false
		}
		if end < len(text) && (text[end] == '}' || text[end] == '$') {
			wrap = false
		}
		if strings.Count(text[:start], "$")%2 == 1 {
			wrap = false
		}

		if wrap {
			b.WriteByte('$')
			b.WriteString(seg)
			b.WriteByte('$')
		} else {
			b.WriteString(seg)
		}
		last = end
	}
	b.WriteString(text[last:])

	// Adjacent wraps can produce "$$", which renderers treat as display
	// math.
	return strings.ReplaceAll(b.String(), "$$", "$ $")
}

var (
	parenStatementRe = regexp.MustCompile(`\s+(\(\d+\)\s)`)
	dotStatementRe   = regexp.MustCompile(`([.:?])\s+(\d+\.\s)`)
)

// formatNumberedStatements inserts line breaks before numbered statements
// that were emitted on one line. "(1) ..." markers always break; "1. ..."
// markers break only after sentence-ending punctuation, so decimal values
// like "E = 1.51" stay intact.
func formatNumberedStatements(text string) string {
	text = parenStatementRe.ReplaceAllString(text, "\n$1")
	text = dotStatementRe.ReplaceAllString(text, "$1\n$2")
	return text
}

var (
	mtcFooterRe    = regexp.MustCompile(`(?i)Choose the correct.*$`)
	mtcHeaderSplit = regexp.MustCompile(`\s*List\s+I\s*\|\s*List\s+II\s*`)
	mtcRowStartRe  = regexp.MustCompile(`(?:^|\s)([A-D])\.\s`)
	mtcRowRe       = regexp.MustCompile(`^([A-D])\.\s*(.*?)\s*\|\s*(IV|III|II|I)\.\s*(.*?)\s*$`)
)

const (
	defaultMTCHeader = "Match List I with List II"
	defaultMTCFooter = "Choose the correct answer from the options given below:"
)

// formatMTCQuestion re-parses freeform match-the-column text into a
// canonical pipe table with a header and footer. When no rows can be
// extracted the text is returned with only literal "\n" sequences
// flattened.
func formatMTCQuestion(text string) string {
	text = strings.ReplaceAll(text, `\n\n`, " ")
	text = strings.ReplaceAll(text, `\n`, " ")
	flat := strings.Join(strings.Fields(text), " ")

	body := flat
	footer := defaultMTCFooter
	if loc := mtcFooterRe.FindStringIndex(flat); loc != nil {
		footer = strings.TrimSpace(flat[loc[0]:])
		body = flat[:loc[0]]
	}

	starts := mtcRowStartRe.FindAllStringSubmatchIndex(body, -1)
	if len(starts) == 0 {
		return text
	}

	type mtcRow struct {
		letter, left, roman, right string
	}
	var rows []mtcRow
	for i, s := range starts {
		segStart := s[2] // letter group start
		segEnd := len(body)
		if i+1 < len(starts) {
			segEnd = starts[i+1][2]
		}
		m := mtcRowRe.FindStringSubmatch(strings.TrimSpace(body[segStart:segEnd]))
		if m == nil {
			continue
		}
		rows = append(rows, mtcRow{letter: m[1], left: m[2], roman: m[3], right: m[4]})
	}
	if len(rows) == 0 {
		return text
	}

	header := defaultMTCHeader
	if idx := strings.Index(body, "A."); idx > 0 {
		h := mtcHeaderSplit.ReplaceAllString(strings.TrimSpace(body[:idx]), "")
		if h = strings.TrimSpace(h); h != "" {
			header = h
		}
	}

	lines := []string{header, "", "List I | List II"}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s. %s | %s. %s", r.letter, r.left, r.roman, r.right))
	}
	lines = append(lines, "", footer)
	return strings.Join(lines, "\n")
}

// applyFormatting runs the formatting pass over every question in place:
// unwrapped math is wrapped in the question text and all options, then
// the text gets either the match-the-column table treatment or numbered
// statement line breaks.
func applyFormatting(questions []*Question) {
	for _, q := range questions {
		if q.QuestionText != "" {
			q.QuestionText = fixUnwrappedLatex(q.QuestionText)
			if q.isMatchTheColumn() {
				q.QuestionText = formatMTCQuestion(q.QuestionText)
			} else {
				q.QuestionText = formatNumberedStatements(q.QuestionText)
			}
		}
		for key, v := range q.Options {
			q.Options[key] = fixUnwrappedLatex(v)
		}
	}
}
