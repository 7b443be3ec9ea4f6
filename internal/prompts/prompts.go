// Package prompts holds the system prompt templates used for question
// generation, keyed by (subject category, question type, difficulty).
// The tables are read-only after construction.
package prompts

// QuestionType identifies the requested question format.
type QuestionType string

const (
	TypeMCQ             QuestionType = "mcq"
	TypeAssertionReason QuestionType = "assertion_reason"
	TypeMatchTheColumn  QuestionType = "match_the_column"

	// TypeCombination is resolved by the caller to a concrete type per
	// sub-request; the registry itself has no combination prompts.
	TypeCombination QuestionType = "combination"
)

// Difficulty is the requested difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Category is a subject family with its own prompt set.
type Category string

const (
	CategoryBiology   Category = "biology"
	CategoryChemistry Category = "chemistry"
)

// Label returns the human-readable form of the type, e.g. "match the column".
func (t QuestionType) Label() string {
	switch t {
	case TypeMCQ:
		return "mcq"
	case TypeAssertionReason:
		return "assertion reason"
	case TypeMatchTheColumn:
		return "match the column"
	default:
		return string(t)
	}
}
