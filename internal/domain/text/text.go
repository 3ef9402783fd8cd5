package text

import (
	"regexp"
	"strings"
	"unicode"
)

// Normalize lowercases s and strips every rune that is not alphanumeric,
// whitespace, or '+'. The '+' is kept so skills like "c++" survive.
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize normalizes s, splits on whitespace, and trims residual
// leading/trailing non-alphanumeric runes from each token. Empty tokens are
// dropped. Skill strings, job text, and corpus documents all go through the
// same vocabulary so weights and overlaps stay comparable.
func Tokenize(s string) []string {
	norm := Normalize(s)
	fields := strings.Fields(norm)

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TokenSet returns the distinct tokens of s.
func TokenSet(s string) map[string]struct{} {
	toks := Tokenize(s)
	set := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		set[t] = struct{}{}
	}
	return set
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// StripHTML replaces markup tags with spaces. Job descriptions from the job
// board arrive as HTML fragments; scoring operates on the plain text.
func StripHTML(s string) string {
	return htmlTagRe.ReplaceAllString(s, " ")
}
