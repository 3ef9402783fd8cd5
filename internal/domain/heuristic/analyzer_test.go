package heuristic

import (
	"math"
	"strings"
	"testing"
)

func TestAnalyzeJob_SkillsCapAtOne(t *testing.T) {
	desc := "rust python javascript typescript react docker kubernetes aws sql redis git linux"
	a := AnalyzeJob("Polyglot Engineer", desc, "")
	if a.Skills.Score != 1.0 {
		t.Fatalf("expected skills sub-score capped at 1.0, got %f", a.Skills.Score)
	}
	if len(a.Skills.Details) < 6 {
		t.Fatalf("expected recognized keywords in details, got %v", a.Skills.Details)
	}
}

func TestAnalyzeJob_ExperiencePriority(t *testing.T) {
	cases := []struct {
		desc string
		want float64
	}{
		{"senior engineer wanted", 0.8},
		{"lead a small team", 0.8},
		{"junior or entry level welcome", 0.9},
		{"mid level / intermediate role", 0.7},
		{"plain description", 0.6},
		// senior wording wins over junior wording when both appear
		{"senior engineer mentoring junior staff", 0.8},
	}
	for _, c := range cases {
		a := AnalyzeJob("t", c.desc, "")
		if a.Experience.Score != c.want {
			t.Fatalf("desc %q: expected experience %f, got %f", c.desc, c.want, a.Experience.Score)
		}
	}
}

func TestAnalyzeJob_Location(t *testing.T) {
	if got := AnalyzeJob("t", "d", "Remote, worldwide").Location.Score; got != 1.0 {
		t.Fatalf("remote location: expected 1.0, got %f", got)
	}
	if got := AnalyzeJob("t", "d", "Berlin").Location.Score; got != 0.7 {
		t.Fatalf("fixed location: expected 0.7, got %f", got)
	}
	if got := AnalyzeJob("t", "d", "").Location.Score; got != 0.8 {
		t.Fatalf("absent location: expected 0.8, got %f", got)
	}
}

func TestAnalyzeJob_OverallIsAverage(t *testing.T) {
	a := AnalyzeJob("Engineer", "plain description", "Berlin")
	want := (a.Skills.Score + a.Experience.Score + a.Location.Score) / 3.0
	if math.Abs(a.Overall-want) > 1e-9 {
		t.Fatalf("expected overall %f, got %f", want, a.Overall)
	}
}

func TestAnalyzeJob_SeniorTitleRecommendation(t *testing.T) {
	a := AnalyzeJob("Senior Backend Engineer", "go and docker work", "Remote")
	found := false
	for _, r := range a.Recommendations {
		if strings.Contains(r, "leadership") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected leadership recommendation for senior title, got %v", a.Recommendations)
	}
}

func TestAnalyzeJob_RequirementsFallbackText(t *testing.T) {
	a := AnalyzeJob("t", "nothing notable here", "")
	if len(a.Requirements) != 1 || a.Requirements[0] != "Standard software development requirements" {
		t.Fatalf("unexpected requirements: %v", a.Requirements)
	}
}

func TestBatchScore(t *testing.T) {
	resume := "experienced with python, docker and aws in production"
	desc := "looking for python and docker experience; aws a plus"

	// base 50 + 3 shared keywords * 5
	if got := BatchScore(resume, "Platform Engineer", desc); got != 65 {
		t.Fatalf("expected 65, got %d", got)
	}
}

func TestBatchScore_TitleBoost(t *testing.T) {
	resume := "worked as platform engineer using python"
	desc := "python role"
	if got := BatchScore(resume, "Platform Engineer", desc); got != 65 {
		t.Fatalf("expected 50+5+10=65, got %d", got)
	}
}

func TestBatchScore_Cap(t *testing.T) {
	all := strings.Join(techKeywords, " ")
	if got := BatchScore(all, "x", all); got != 100 {
		t.Fatalf("expected cap at 100, got %d", got)
	}
}

func TestBatchScore_NoOverlap(t *testing.T) {
	if got := BatchScore("haskell only", "Engineer", "cobol shop"); got != 50 {
		t.Fatalf("expected base 50, got %d", got)
	}
}
