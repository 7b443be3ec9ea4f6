package excel

import (
	"regexp"
	"strings"
)

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', 'n': 'ⁿ', '(': '⁽', ')': '⁾',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'o': 'ₒ', 'x': 'ₓ',
	'h': 'ₕ', 'k': 'ₖ', 'l': 'ₗ', 'm': 'ₘ',
	'n': 'ₙ', 'p': 'ₚ', 's': 'ₛ', 't': 'ₜ',
}

// greekReplacements is ordered so that longer command names are replaced
// before their prefixes ("\theta" before "\to" would otherwise mangle).
var greekReplacements = []struct{ name, char string }{
	{"alpha", "α"}, {"beta", "β"}, {"gamma", "γ"}, {"delta", "δ"},
	{"pi", "π"}, {"sigma", "σ"}, {"lambda", "λ"}, {"mu", "μ"},
	{"theta", "θ"}, {"Delta", "Δ"},
}

var (
	mathBlockRe    = regexp.MustCompile(`\$([^$]+)\$`)
	textWrapperRe  = regexp.MustCompile(`\\(?:text|mathrm|textrm)\{([^}]*)\}`)
	degreeRe       = regexp.MustCompile(`\^\\circ`)
	supBraceRe     = regexp.MustCompile(`\^\{([^}]*)\}`)
	supSingleRe    = regexp.MustCompile(`\^([0-9+\-n])`)
	subBraceRe     = regexp.MustCompile(`_\{([^}]*)\}`)
	subSingleRe    = regexp.MustCompile(`_([0-9aehklmnopstx])`)
	leftoverCmdRe  = regexp.MustCompile(`\\([a-zA-Z]+)`)
	literalBreakRe = regexp.MustCompile(`\\n`)
)

func mapRunes(s string, table map[rune]rune) string {
	var b strings.Builder
	for _, r := range s {
		if mapped, ok := table[r]; ok {
			b.WriteRune(mapped)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// latexToUnicode converts LaTeX math notation into plain Unicode text:
// $...$ delimiters are stripped, super/subscripts become their Unicode
// forms, and common commands map to the matching symbol. Unknown
// commands lose their backslash.
func latexToUnicode(text string) string {
	if text == "" {
		return ""
	}

	text = mathBlockRe.ReplaceAllString(text, "$1")
	text = textWrapperRe.ReplaceAllString(text, "$1")

	for _, g := range greekReplacements {
		text = strings.ReplaceAll(text, `\`+g.name, g.char)
	}

	text = strings.ReplaceAll(text, `\cdot`, "·")
	text = degreeRe.ReplaceAllString(text, "°")
	text = strings.ReplaceAll(text, `\circ`, "°")
	text = strings.ReplaceAll(text, `\rightarrow`, "→")
	text = strings.ReplaceAll(text, `\to`, "→")
	text = strings.ReplaceAll(text, `\times`, "×")

	text = supBraceRe.ReplaceAllStringFunc(text, func(m string) string {
		return mapRunes(supBraceRe.FindStringSubmatch(m)[1], superscripts)
	})
	text = supSingleRe.ReplaceAllStringFunc(text, func(m string) string {
		return mapRunes(m[1:], superscripts)
	})
	text = subBraceRe.ReplaceAllStringFunc(text, func(m string) string {
		return mapRunes(subBraceRe.FindStringSubmatch(m)[1], subscripts)
	})
	text = subSingleRe.ReplaceAllStringFunc(text, func(m string) string {
		return mapRunes(m[1:], subscripts)
	})

	return leftoverCmdRe.ReplaceAllString(text, "$1")
}

// clean prepares text for a cell: math converted to Unicode, literal
// escaped line breaks made real, surrounding whitespace dropped.
func clean(text string) string {
	text = latexToUnicode(text)
	text = strings.ReplaceAll(text, `\n\n`, "\n")
	text = literalBreakRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
