package dto

type SubScoreResponse struct {
	Score       float64  `json:"score"`
	Explanation string   `json:"explanation"`
	Details     []string `json:"details"`
}

type MatchBreakdownResponse struct {
	Skills     SubScoreResponse  `json:"skills"`
	Experience SubScoreResponse  `json:"experience"`
	Location   *SubScoreResponse `json:"location,omitempty"`
}

type MatchDetailResponse struct {
	JobID            string                 `json:"job_id"`
	Title            string                 `json:"title"`
	Company          string                 `json:"company_name"`
	OverallScore     float64                `json:"overall_score"`
	Breakdown        MatchBreakdownResponse `json:"breakdown"`
	Recommendations  []string               `json:"recommendations"`
	JobRequirements  []string               `json:"job_requirements"`
	MissingSkills    []string               `json:"missing_skills"`
	MatchExplanation string                 `json:"match_explanation"`
	ServiceStatus    string                 `json:"service_status"`
}
