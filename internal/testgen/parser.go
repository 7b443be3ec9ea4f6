package testgen

import (
	"encoding/json"
	"strings"
)

// terminalParseError is the ParseError value of a batch that survived no
// repair strategy.
const terminalParseError = "Failed to parse response as JSON"

// rawResponseLimit bounds how much raw model text a terminal failure
// carries for debugging.
const rawResponseLimit = 500

// truncationSuffixes are the closing sequences tried at each candidate
// brace position during truncation repair, shortest first.
var truncationSuffixes = []string{"", "}", "]}", "]}}", "]}}}", "]}]}"}

// ParseResponse converts raw model output into a Batch, applying
// progressively more aggressive repair strategies:
//
//  1. strip code fences and trim;
//  2. discard prose before the first "{";
//  3. direct parse;
//  4. re-parse after doubling dangling backslashes, which repairs LaTeX
//     control sequences the model left unescaped inside JSON strings;
//  5. truncation repair: scan closing braces backward and try a small
//     set of closing suffixes, accepting the first candidate that parses
//     with a non-empty question list;
//  6. terminal failure carrying the first 500 characters of raw text.
//
// A Batch with ParseError set is a terminal, non-retryable outcome.
func ParseResponse(raw string) *Batch {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	if !strings.HasPrefix(clean, "{") {
		if idx := strings.Index(clean, "{"); idx != -1 {
			clean = clean[idx:]
		}
	}

	if b, ok := tryParse(clean); ok {
		return b
	}

	escaped := fixLatexEscapes(clean)
	if b, ok := tryParse(escaped); ok {
		return b
	}

	// The output was likely cut off mid-document. Walk candidate
	// truncation points backward and try to close the JSON at each.
	pos := len(escaped)
	for pos > 0 {
		pos = strings.LastIndex(escaped[:pos], "}")
		if pos == -1 {
			break
		}
		truncated := escaped[:pos+1]
		for _, suffix := range truncationSuffixes {
			b, ok := tryParse(truncated + suffix)
			if ok && len(b.Questions) > 0 {
				return b
			}
		}
	}

	return &Batch{
		RawResponse: truncateString(raw, rawResponseLimit),
		ParseError:  terminalParseError,
	}
}

func tryParse(text string) (*Batch, bool) {
	var b Batch
	if err := json.Unmarshal([]byte(text), &b); err != nil {
		return nil, false
	}
	return &b, true
}

// fixLatexEscapes doubles every backslash that does not begin a valid
// JSON escape sequence, so that strings carrying raw LaTeX commands
// (e.g. \circ, \Delta) survive JSON parsing. Well-formed escapes are
// left untouched.
func fixLatexEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(s) {
			switch s[i+1] {
			case '\\', '"', '/', 'n', 'r', 't', 'b', 'f', 'u':
				b.WriteByte('\\')
				b.WriteByte(s[i+1])
				i++
				continue
			}
		}
		b.WriteString(`\\`)
	}
	return b.String()
}

// truncateString keeps the first n characters, never splitting a
// multibyte rune.
func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
