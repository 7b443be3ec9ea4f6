package prompts

import (
	"fmt"
	"strings"
)

// Template is one prompt configuration: the per-type grading rules and
// the JSON shape the model must emit.
type Template struct {
	Rules        string
	OutputSchema string
	Description  string
}

// Key identifies a prompt configuration.
type Key struct {
	Category   Category
	Type       QuestionType
	Difficulty Difficulty
}

// Registry is the read-only prompt lookup table, constructed once at
// startup and never mutated afterwards.
type Registry struct {
	templates map[Key]Template
}

// NewRegistry builds the registry from the built-in biology and
// chemistry prompt tables.
func NewRegistry() *Registry {
	templates := make(map[Key]Template)
	for k, t := range biologyTemplates {
		templates[Key{CategoryBiology, k.Type, k.Difficulty}] = t
	}
	for k, t := range chemistryTemplates {
		templates[Key{CategoryChemistry, k.Type, k.Difficulty}] = t
	}
	return &Registry{templates: templates}
}

// typeDifficulty keys the per-category tables.
type typeDifficulty struct {
	Type       QuestionType
	Difficulty Difficulty
}

// Prompt returns the fully formatted system prompt for the given subject,
// question type, difficulty, and question count. The subject is resolved
// to a category first. A missing configuration is a fail-fast error: it
// is reported before any model call is attempted.
func (r *Registry) Prompt(subject string, qt QuestionType, diff Difficulty, questionCount int) (string, error) {
	cat, err := CategoryFor(subject)
	if err != nil {
		return "", err
	}

	tpl, ok := r.templates[Key{cat, qt, diff}]
	if !ok {
		return "", fmt.Errorf("no prompt configured for (%s, %s, %s)", cat, qt, diff)
	}

	repl := strings.NewReplacer(
		"{subject}", subject,
		"{question_count}", fmt.Sprintf("%d", questionCount),
		"{difficulty}", string(diff),
		"{question_type}", string(qt),
		"{question_type_rules}", tpl.Rules,
		"{output_schema}", tpl.OutputSchema,
	)
	return repl.Replace(baseTemplate), nil
}

// Description returns the human-readable description for a configuration,
// or "Unknown configuration" when none exists.
func (r *Registry) Description(subject string, qt QuestionType, diff Difficulty) string {
	cat, err := CategoryFor(subject)
	if err != nil {
		return "Unknown configuration"
	}
	if tpl, ok := r.templates[Key{cat, qt, diff}]; ok {
		return tpl.Description
	}
	return "Unknown configuration"
}

// Keys returns all configured keys for a category.
func (r *Registry) Keys(cat Category) []Key {
	var out []Key
	for k := range r.templates {
		if k.Category == cat {
			out = append(out, k)
		}
	}
	return out
}
