package dto

import "github.com/google/uuid"

type RecommendedJobResponse struct {
	JobID         uuid.UUID `json:"job_id"`
	ExternalID    string    `json:"external_id"`
	Title         string    `json:"title"`
	Company       string    `json:"company_name"`
	Location      string    `json:"candidate_required_location"`
	URL           string    `json:"url"`
	MatchScore    float64   `json:"match_score"`
	ScoreSource   string    `json:"score_source"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
}

type SkillRecommendationResponse struct {
	JobID         uuid.UUID `json:"job_id"`
	ExternalID    string    `json:"external_id"`
	Title         string    `json:"title"`
	Company       string    `json:"company_name"`
	URL           string    `json:"url"`
	MatchScore    float64   `json:"match_score"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
	Explanation   string    `json:"explanation"`
}
