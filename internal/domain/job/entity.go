package job

import (
	"time"

	"github.com/google/uuid"
)

// Document is one job posting as seen by the scoring core. Documents are
// ephemeral: fetched per request from the job board, scored, and discarded.
type Document struct {
	ID          uuid.UUID
	ExternalID  string
	Title       string
	Company     string
	CompanyLogo string
	Location    string
	URL         string
	Description string
	Category    string
	JobType     string
	Salary      string
	PublishedAt time.Time
}

// Text returns the free text a matcher scores against: title plus
// description. Description HTML is the caller's concern.
func (d Document) Text() string {
	if d.Title == "" {
		return d.Description
	}
	return d.Title + " " + d.Description
}
