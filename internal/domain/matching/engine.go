package matching

import (
	"joblens/internal/domain/corpus"
	"joblens/internal/domain/text"
)

// Result is the outcome of scoring one skill set against one document. Every
// distinct skill token lands in exactly one of Matched or Missing. Matched and
// Missing carry no ordering guarantee.
type Result struct {
	Score   float64
	Matched []string
	Missing []string
}

// Compute scores a skill set against a document's text by plain set overlap:
// score = |matched| / |distinct skills| * 100. Duplicate skills collapse.
func Compute(skills []string, documentText string) Result {
	userSet := normalizeSet(skills)
	if len(userSet) == 0 {
		return Result{Score: 0, Matched: []string{}, Missing: []string{}}
	}

	docTokens := text.TokenSet(documentText)

	matched := make([]string, 0, len(userSet))
	missing := make([]string, 0)
	for tok := range userSet {
		if _, ok := docTokens[tok]; ok {
			matched = append(matched, tok)
		} else {
			missing = append(missing, tok)
		}
	}

	score := float64(len(matched)) / float64(len(userSet)) * 100.0
	return Result{Score: clamp(score), Matched: matched, Missing: missing}
}

// ComputeWeighted scores with corpus term weights: each skill token
// contributes its weight to the denominator and, when present in the
// document, to the numerator. Unknown tokens weigh 1.0. With an empty table
// it degrades to the unweighted Compute.
//
// Unlike Compute this path walks the skill list as given, repeats included.
// The asymmetry is inherited behavior; see DESIGN.md.
func ComputeWeighted(skills []string, documentText string, table corpus.Table) Result {
	if table.Empty() {
		return Compute(skills, documentText)
	}

	tokens := normalizeList(skills)
	if len(tokens) == 0 {
		return Result{Score: 0, Matched: []string{}, Missing: []string{}}
	}

	docTokens := text.TokenSet(documentText)

	matched := make([]string, 0, len(tokens))
	missing := make([]string, 0)
	var matchSum, totalSum float64

	for _, tok := range tokens {
		w := table.Weight(tok)
		totalSum += w
		if _, ok := docTokens[tok]; ok {
			matched = append(matched, tok)
			matchSum += w
		} else {
			missing = append(missing, tok)
		}
	}

	score := 0.0
	if totalSum > 0 {
		score = matchSum / totalSum * 100.0
	}
	return Result{Score: clamp(score), Matched: matched, Missing: missing}
}

func normalizeSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		n := text.Normalize(s)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

func normalizeList(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := text.Normalize(s)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
