package testgen

import "strings"

// randomizeAnswerPositions spreads correct answers near-equally across
// the four letters for MCQ and match-the-column questions.
// Assertion-reason questions are exempt: their options are fixed
// logical-relationship templates, so swapping them would change meaning.
// A swap exchanges option content (and per-option explanation content)
// between the current and target letters; the truth value of the
// question is preserved.
func (n *Normalizer) randomizeAnswerPositions(questions []*Question) {
	var shufflable []int
	for i, q := range questions {
		if !q.isAssertionReason() {
			shufflable = append(shufflable, i)
		}
	}
	if len(shufflable) < 2 {
		return
	}

	count := len(shufflable)
	base := count / 4
	remainder := count % 4

	// Randomize which letters absorb the remainder so no letter is
	// systematically favored.
	letters := append([]string(nil), optionKeys...)
	n.rng.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	targetCounts := map[string]int{}
	for i, l := range letters {
		targetCounts[l] = base
		if i < remainder {
			targetCounts[l]++
		}
	}

	shuffledIdx := append([]int(nil), shufflable...)
	n.rng.Shuffle(len(shuffledIdx), func(i, j int) {
		shuffledIdx[i], shuffledIdx[j] = shuffledIdx[j], shuffledIdx[i]
	})

	type assignment struct {
		questionIdx int
		target      string
	}
	var assignments []assignment
	pos := 0
	for _, letter := range optionKeys {
		for range targetCounts[letter] {
			assignments = append(assignments, assignment{shuffledIdx[pos], letter})
			pos++
		}
	}

	swaps := 0
	for _, a := range assignments {
		q := questions[a.questionIdx]
		current := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
		if current == a.target {
			continue
		}

		curOpt, okCur := q.Options[current]
		tgtOpt, okTgt := q.Options[a.target]
		if !okCur || !okTgt {
			continue
		}

		q.Options[current], q.Options[a.target] = tgtOpt, curOpt
		if exp := q.Explanation.PerOption; exp != nil {
			ce, okCE := exp[current]
			te, okTE := exp[a.target]
			if okCE && okTE {
				exp[current], exp[a.target] = te, ce
			}
		}
		q.CorrectAnswer = a.target
		swaps++
	}

	dist := map[string]int{"a": 0, "b": 0, "c": 0, "d": 0}
	for _, i := range shufflable {
		ans := strings.ToLower(strings.TrimSpace(questions[i].CorrectAnswer))
		if _, ok := dist[ans]; ok {
			dist[ans]++
		}
	}
	n.log.Info().
		Int("swaps", swaps).
		Interface("distribution", dist).
		Msg("answer positions rebalanced")
}
