package matching

import (
	"math"
	"sort"
	"testing"

	"joblens/internal/domain/corpus"
)

func sorted(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}

func equalSets(a, b []string) bool {
	a, b = sorted(a), sorted(b)
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

func TestCompute_EmptySkills(t *testing.T) {
	res := Compute(nil, "go python kubernetes")
	if res.Score != 0 || len(res.Matched) != 0 || len(res.Missing) != 0 {
		t.Fatalf("expected zero result, got %+v", res)
	}
}

func TestCompute_Partition(t *testing.T) {
	res := Compute([]string{"Go", "Python", "Terraform", "go"}, "we write go and python services")

	if !equalSets(res.Matched, []string{"go", "python"}) {
		t.Fatalf("unexpected matched: %v", res.Matched)
	}
	if !equalSets(res.Missing, []string{"terraform"}) {
		t.Fatalf("unexpected missing: %v", res.Missing)
	}
	// Duplicates collapse: 2 of 3 distinct skills matched.
	want := 2.0 / 3.0 * 100.0
	if math.Abs(res.Score-want) > 1e-9 {
		t.Fatalf("expected score %f, got %f", want, res.Score)
	}
}

func TestCompute_ScoreBounds(t *testing.T) {
	cases := []struct {
		skills []string
		doc    string
	}{
		{[]string{"go"}, ""},
		{[]string{"go"}, "go go go"},
		{[]string{"go", "rust", "zig"}, "only go here"},
	}
	for _, c := range cases {
		res := Compute(c.skills, c.doc)
		if res.Score < 0 || res.Score > 100 {
			t.Fatalf("score out of range for %v: %f", c.skills, res.Score)
		}
	}
}

func TestCompute_AddingMissingTokenDoesNotDecrease(t *testing.T) {
	skills := []string{"go", "python", "terraform"}
	doc := "go services in production"

	before := Compute(skills, doc)
	after := Compute(skills, doc+" terraform")
	if after.Score < before.Score {
		t.Fatalf("score decreased after adding missing token: %f -> %f", before.Score, after.Score)
	}
}

func TestComputeWeighted_WorkedExample(t *testing.T) {
	table := corpus.Table{"python": 1.2, "react": 1.5}
	res := ComputeWeighted([]string{"python", "react"}, "python backend role", table)

	want := 1.2 / (1.2 + 1.5) * 100.0
	if math.Abs(res.Score-want) > 1e-9 {
		t.Fatalf("expected score %f, got %f", want, res.Score)
	}
	if !equalSets(res.Matched, []string{"python"}) {
		t.Fatalf("unexpected matched: %v", res.Matched)
	}
	if !equalSets(res.Missing, []string{"react"}) {
		t.Fatalf("unexpected missing: %v", res.Missing)
	}
}

func TestComputeWeighted_DuplicateSensitive(t *testing.T) {
	table := corpus.Table{"go": 2.0, "rust": 2.0}

	single := ComputeWeighted([]string{"go", "rust"}, "go shop", table)
	doubled := ComputeWeighted([]string{"go", "go", "rust"}, "go shop", table)

	if doubled.Score <= single.Score {
		t.Fatalf("expected repeated matched skill to raise weighted score: %f vs %f", single.Score, doubled.Score)
	}
	if len(doubled.Matched) != 2 {
		t.Fatalf("expected both go repeats in matched, got %v", doubled.Matched)
	}
}

func TestComputeWeighted_EmptyTableFallsBack(t *testing.T) {
	weighted := ComputeWeighted([]string{"go", "go", "rust"}, "go shop", corpus.Table{})
	unweighted := Compute([]string{"go", "rust"}, "go shop")
	if weighted.Score != unweighted.Score {
		t.Fatalf("empty table should score unweighted: %f vs %f", weighted.Score, unweighted.Score)
	}
}

func TestComputeWeighted_UnknownTokenDefaultWeight(t *testing.T) {
	table := corpus.Table{"python": 3.0}
	res := ComputeWeighted([]string{"python", "cobol"}, "python role", table)

	want := 3.0 / (3.0 + 1.0) * 100.0
	if math.Abs(res.Score-want) > 1e-9 {
		t.Fatalf("expected default weight 1.0 for unknown token, score %f, got %f", want, res.Score)
	}
}
