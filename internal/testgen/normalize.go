package testgen

import (
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// Normalizer runs the ordered repair passes over a merged question list.
// Every pass mutates questions in place and is idempotent on
// already-correct input. The passes run single-threaded after the
// fan-in merge, so no synchronization is needed.
type Normalizer struct {
	rng *rand.Rand
	log zerolog.Logger
}

// NewNormalizer returns a Normalizer with a freshly seeded random source.
func NewNormalizer(log zerolog.Logger) *Normalizer {
	return &Normalizer{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log: log,
	}
}

// Normalize applies all repair passes in order:
//
//  1. formatting (math wrapping, statement line breaks, table rebuild);
//  2. duplicate-option repair, match-the-column only;
//  3. sequential-answer repair, match-the-column only;
//  4. answer-position rebalancing, assertion-reason exempt.
//
// The slice is returned for convenience; mutation happens in place.
func (n *Normalizer) Normalize(questions []*Question) []*Question {
	applyFormatting(questions)
	n.fixDuplicateMTCOptions(questions)
	n.fixSequentialMTCMapping(questions)
	n.randomizeAnswerPositions(questions)
	return questions
}
