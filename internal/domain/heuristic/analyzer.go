package heuristic

import (
	"fmt"
	"strings"
)

// techKeywords is the fixed vocabulary recognized by both fallback formulas.
var techKeywords = []string{
	"rust", "python", "javascript", "typescript", "react", "node.js", "docker",
	"kubernetes", "aws", "gcp", "sql", "mongodb", "redis", "git", "linux",
	"java", "c++", "go", "html", "css", "angular", "vue", "express",
}

// SubScore is one axis of the rich single-job breakdown.
type SubScore struct {
	Score       float64
	Explanation string
	Details     []string
}

// Analysis is the rich single-job result used when the oracle is unavailable
// for a detail match. Overall and the sub-scores are in [0,1].
type Analysis struct {
	Overall         float64
	Skills          SubScore
	Experience      SubScore
	Location        SubScore
	Recommendations []string
	Requirements    []string
	Explanation     string
}

// AnalyzeJob scores a single job from its text alone. Overall is the plain
// average of the three sub-scores.
func AnalyzeJob(title, description, location string) Analysis {
	skills := analyzeSkills(title, description)
	experience := analyzeExperience(description)
	loc := analyzeLocation(location)

	overall := (skills.Score + experience.Score + loc.Score) / 3.0

	return Analysis{
		Overall:         overall,
		Skills:          skills,
		Experience:      experience,
		Location:        loc,
		Recommendations: recommendations(overall, title),
		Requirements:    extractRequirements(description),
		Explanation: fmt.Sprintf(
			"Based on basic analysis of job requirements for %s, this position has a %d%% compatibility match.",
			title, int(overall*100),
		),
	}
}

// BatchScore is the cheap formula used when the oracle fails for an entire
// recommendation batch: base 50, +5 per keyword shared by resume and job
// description, +10 when the resume mentions the job title, capped at 100.
func BatchScore(resumeText, jobTitle, jobDescription string) int {
	resume := strings.ToLower(resumeText)
	desc := strings.ToLower(jobDescription)

	score := 50
	for _, kw := range techKeywords {
		if strings.Contains(resume, kw) && strings.Contains(desc, kw) {
			score += 5
		}
	}
	if jobTitle != "" && strings.Contains(resume, strings.ToLower(jobTitle)) {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

func analyzeSkills(title, description string) SubScore {
	desc := strings.ToLower(description)
	tl := strings.ToLower(title)

	found := make([]string, 0)
	score := 0.5
	for _, kw := range techKeywords {
		if strings.Contains(desc, kw) || strings.Contains(tl, kw) {
			found = append(found, kw)
			score += 0.1
		}
	}
	if score > 1.0 {
		score = 1.0
	}

	return SubScore{
		Score:       score,
		Explanation: fmt.Sprintf("Found %d relevant technical skills", len(found)),
		Details:     found,
	}
}

func analyzeExperience(description string) SubScore {
	desc := strings.ToLower(description)

	score := 0.6
	explanation := "Experience requirements analysis"
	details := make([]string, 0)

	// Seniority wording is checked in priority order; first category wins.
	switch {
	case strings.Contains(desc, "senior") || strings.Contains(desc, "lead"):
		score = 0.8
		explanation = "Senior level position identified"
		details = append(details, "Requires senior-level experience")
	case strings.Contains(desc, "junior") || strings.Contains(desc, "entry"):
		score = 0.9
		explanation = "Entry level position identified"
		details = append(details, "Suitable for junior developers")
	case strings.Contains(desc, "mid") || strings.Contains(desc, "intermediate"):
		score = 0.7
		explanation = "Mid-level position identified"
		details = append(details, "Requires intermediate experience")
	}

	if strings.Contains(desc, "5+ years") || strings.Contains(desc, "5 years") {
		details = append(details, "Requires 5+ years experience")
	} else if strings.Contains(desc, "3+ years") || strings.Contains(desc, "3 years") {
		details = append(details, "Requires 3+ years experience")
	}

	return SubScore{Score: score, Explanation: explanation, Details: details}
}

func analyzeLocation(location string) SubScore {
	loc := strings.TrimSpace(location)
	switch {
	case loc == "":
		return SubScore{
			Score:       0.8,
			Explanation: "Location not specified",
			Details:     []string{"Location requirements unclear"},
		}
	case strings.Contains(strings.ToLower(loc), "remote"):
		return SubScore{
			Score:       1.0,
			Explanation: "Remote position - perfect location match",
			Details:     []string{"Remote work opportunity"},
		}
	default:
		return SubScore{
			Score:       0.7,
			Explanation: "Location: " + loc,
			Details:     []string{"Based in " + loc},
		}
	}
}

func recommendations(overall float64, title string) []string {
	out := make([]string, 0, 3)
	switch {
	case overall < 0.5:
		out = append(out,
			"Consider developing more relevant technical skills",
			"Look for entry-level positions to gain experience",
		)
	case overall < 0.7:
		out = append(out,
			"Good foundation - focus on strengthening key skills",
			"Consider relevant certifications or training",
		)
	default:
		out = append(out,
			"Strong match - highlight relevant experience",
			"Tailor your application to showcase matching skills",
		)
	}

	if strings.Contains(strings.ToLower(title), "senior") {
		out = append(out, "Emphasize leadership and mentoring experience")
	}
	return out
}

var requirementPatterns = []string{
	"required", "must have", "essential", "mandatory", "minimum",
	"bachelor", "degree", "certification", "years of experience",
}

func extractRequirements(description string) []string {
	desc := strings.ToLower(description)

	out := make([]string, 0)
	for _, p := range requirementPatterns {
		if strings.Contains(desc, p) {
			out = append(out, "Contains requirement: "+p)
		}
	}
	if len(out) == 0 {
		out = append(out, "Standard software development requirements")
	}
	return out
}
