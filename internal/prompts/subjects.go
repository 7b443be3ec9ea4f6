package prompts

import (
	"fmt"
	"sort"
	"strings"
)

// subjectCategories maps subject names to their prompt category.
var subjectCategories = map[string]Category{
	// Biology subjects
	"biology":          CategoryBiology,
	"botany":           CategoryBiology,
	"zoology":          CategoryBiology,
	"cell biology":     CategoryBiology,
	"genetics":         CategoryBiology,
	"ecology":          CategoryBiology,
	"human physiology": CategoryBiology,
	"plant physiology": CategoryBiology,
	"microbiology":     CategoryBiology,

	// Chemistry subjects
	"chemistry":           CategoryChemistry,
	"organic chemistry":   CategoryChemistry,
	"inorganic chemistry": CategoryChemistry,
	"physical chemistry":  CategoryChemistry,
	"general chemistry":   CategoryChemistry,
	"biochemistry":        CategoryChemistry,
}

// CategoryFor resolves a subject name to its prompt category.
// Matching is case-insensitive; when no exact match exists, a partial
// match in either direction is accepted ("organic chem" → chemistry).
func CategoryFor(subject string) (Category, error) {
	s := strings.ToLower(strings.TrimSpace(subject))
	if s == "" {
		return "", fmt.Errorf("subject is required")
	}

	if cat, ok := subjectCategories[s]; ok {
		return cat, nil
	}

	// Deterministic iteration order for the partial-match fallback.
	keys := make([]string, 0, len(subjectCategories))
	for k := range subjectCategories {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.Contains(s, k) || strings.Contains(k, s) {
			return subjectCategories[k], nil
		}
	}

	return "", fmt.Errorf("unknown subject %q (supported: %s)", subject, strings.Join(keys, ", "))
}

// Subjects returns all supported subject names, sorted.
func Subjects() []string {
	out := make([]string, 0, len(subjectCategories))
	for k := range subjectCategories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
