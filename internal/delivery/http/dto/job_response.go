package dto

import (
	"time"

	"github.com/google/uuid"
)

type JobListItemResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID string    `json:"external_id"`
	Title      string    `json:"title"`
	Company    string    `json:"company_name"`
	Logo       string    `json:"company_logo,omitempty"`
	Location   string    `json:"candidate_required_location"`
	URL        string    `json:"url"`
	Category   string    `json:"category"`
	JobType    string    `json:"job_type"`
	Salary     string    `json:"salary,omitempty"`
	Snippet    string    `json:"snippet"`
	PostedAt   time.Time `json:"publication_date"`
}

type JobDetailResponse struct {
	JobListItemResponse
	Description string `json:"description"`
}

type JobListResponse struct {
	JobCount int                   `json:"job_count"`
	Jobs     []JobListItemResponse `json:"jobs"`
}
