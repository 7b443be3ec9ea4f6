package testgen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	romanLabels = []string{"I", "II", "III", "IV"}
	optionKeys  = []string{"a", "b", "c", "d"}
)

func normalizeOptionValue(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

func makeOptionString(perm []string) string {
	parts := make([]string, len(perm))
	for i, r := range perm {
		parts[i] = fmt.Sprintf("%s-%s", strings.ToUpper(optionKeys[i]), r)
	}
	return strings.Join(parts, ", ")
}

// romanPermutations returns all 24 orderings of the four roman labels.
func romanPermutations() [][]string {
	var perms [][]string
	var build func(remaining, current []string)
	build = func(remaining, current []string) {
		if len(remaining) == 0 {
			perms = append(perms, append([]string(nil), current...))
			return
		}
		for i, r := range remaining {
			rest := make([]string, 0, len(remaining)-1)
			rest = append(rest, remaining[:i]...)
			rest = append(rest, remaining[i+1:]...)
			build(rest, append(current, r))
		}
	}
	build(romanLabels, nil)
	return perms
}

// fixDuplicateMTCOptions replaces duplicated match-the-column options
// with fresh permutations so all four options end up pairwise distinct.
// Comparison is whitespace- and case-insensitive.
func (n *Normalizer) fixDuplicateMTCOptions(questions []*Question) {
	for _, q := range questions {
		if !q.isMatchTheColumn() || len(q.Options) < 4 {
			continue
		}

		values := make([]string, len(optionKeys))
		normalized := make([]string, len(optionKeys))
		for i, k := range optionKeys {
			values[i] = q.Options[k]
			normalized[i] = normalizeOptionValue(values[i])
		}

		seen := map[string]int{}
		var duplicates []int
		for i, norm := range normalized {
			if _, ok := seen[norm]; ok {
				duplicates = append(duplicates, i)
			} else {
				seen[norm] = i
			}
		}
		if len(duplicates) == 0 {
			continue
		}

		n.log.Warn().
			Int("question_id", q.QuestionID).
			Int("duplicates", len(duplicates)).
			Msg("duplicate match-the-column options, generating replacements")

		usedNorms := map[string]bool{}
		for i, norm := range normalized {
			if !contains(duplicates, i) {
				usedNorms[norm] = true
			}
		}

		var available [][]string
		for _, p := range romanPermutations() {
			if !usedNorms[normalizeOptionValue(makeOptionString(p))] {
				available = append(available, p)
			}
		}
		n.rng.Shuffle(len(available), func(i, j int) {
			available[i], available[j] = available[j], available[i]
		})

		for _, dupIdx := range duplicates {
			if len(available) == 0 {
				break
			}
			perm := available[len(available)-1]
			available = available[:len(available)-1]
			newOpt := makeOptionString(perm)
			usedNorms[normalizeOptionValue(newOpt)] = true

			filtered := available[:0]
			for _, p := range available {
				if !usedNorms[normalizeOptionValue(makeOptionString(p))] {
					filtered = append(filtered, p)
				}
			}
			available = filtered

			q.Options[optionKeys[dupIdx]] = newOpt
			n.log.Info().
				Int("question_id", q.QuestionID).
				Str("option", optionKeys[dupIdx]).
				Str("replacement", newOpt).
				Msg("replaced duplicate option")
		}
	}
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// sequentialMappingRe detects the trivial identity answer key
// "A-I, B-II, C-III, D-IV" with any dash variant.
var sequentialMappingRe = regexp.MustCompile(
	`(?i)A\s*[-–—]\s*I\s*,\s*B\s*[-–—]\s*II\s*,\s*C\s*[-–—]\s*III\s*,\s*D\s*[-–—]\s*IV`)

var (
	dashRomanRe = regexp.MustCompile(`[-–—]\s*(IV|III|II|I)`)
	romanDotRe  = regexp.MustCompile(`(IV|III|II|I)\.`)
)

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// applyNumeralSwap relabels roman numerals per swapMap in two contexts:
// after a dash (option mappings like "A-I") and before a dot (List II
// row labels like "I. item"). The rewrite is a single pass over the
// text, so a numeral is never swapped twice.
func applyNumeralSwap(text string, swapMap map[string]string) string {
	type span struct {
		start, end int
		repl       string
	}
	var spans []span

	for _, m := range dashRomanRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		if end < len(text) && isWordByte(text[end]) {
			continue
		}
		if repl, ok := swapMap[text[start:end]]; ok {
			spans = append(spans, span{start, end, repl})
		}
	}
	for _, m := range romanDotRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		if start > 0 && isWordByte(text[start-1]) {
			continue
		}
		if repl, ok := swapMap[text[start:end]]; ok {
			spans = append(spans, span{start, end, repl})
		}
	}
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, sp := range spans {
		if sp.start < last {
			continue // overlaps a span already written
		}
		b.WriteString(text[last:sp.start])
		b.WriteString(sp.repl)
		last = sp.end
	}
	b.WriteString(text[last:])
	return b.String()
}

// fixSequentialMTCMapping detects match-the-column questions whose
// correct option is the identity mapping and relabels List II with a
// random non-identity permutation, consistently across all options, the
// question table, and the explanation.
func (n *Normalizer) fixSequentialMTCMapping(questions []*Question) {
	for _, q := range questions {
		if !q.isMatchTheColumn() {
			continue
		}

		correctKey := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
		correctText, ok := q.Options[correctKey]
		if !ok {
			continue
		}
		if !sequentialMappingRe.MatchString(correctText) {
			continue
		}

		n.log.Warn().
			Int("question_id", q.QuestionID).
			Str("correct_option", correctText).
			Msg("sequential match-the-column answer detected, shuffling labels")

		var shuffled []string
		for {
			shuffled = append([]string(nil), romanLabels...)
			n.rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			if !equalStrings(shuffled, romanLabels) {
				break
			}
		}

		swapMap := map[string]string{}
		for i, old := range romanLabels {
			if old != shuffled[i] {
				swapMap[old] = shuffled[i]
			}
		}

		for _, k := range optionKeys {
			if v, ok := q.Options[k]; ok {
				q.Options[k] = applyNumeralSwap(v, swapMap)
			}
		}
		q.QuestionText = applyNumeralSwap(q.QuestionText, swapMap)
		if q.Explanation.PerOption != nil {
			for k, v := range q.Explanation.PerOption {
				q.Explanation.PerOption[k] = applyNumeralSwap(v, swapMap)
			}
		} else if q.Explanation.Text != "" {
			q.Explanation.Text = applyNumeralSwap(q.Explanation.Text, swapMap)
		}

		n.log.Info().
			Int("question_id", q.QuestionID).
			Str("new_correct", q.Options[correctKey]).
			Msg("shuffled match-the-column labels")
	}
}

func equalStrings(a, b []string) bool {
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
