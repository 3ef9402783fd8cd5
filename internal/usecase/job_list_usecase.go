package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"joblens/internal/domain/job"
	"joblens/internal/domain/text"
	"joblens/internal/infrastructure/jobsource"

	"github.com/google/uuid"
)

const snippetLength = 280

type JobListParams struct {
	Search   string
	Category string
	Company  string
	Limit    int
	Offset   int
}

type JobListItem struct {
	JobID      uuid.UUID
	ExternalID string
	Title      string
	Company    string
	Logo       string
	Location   string
	URL        string
	Category   string
	JobType    string
	Salary     string
	Snippet    string
	PostedAt   time.Time
}

// JobDetail is a single posting with its full plain-text description.
type JobDetail struct {
	JobListItem
	Description string
}

type JobListUsecase interface {
	ListJobs(ctx context.Context, params JobListParams) ([]JobListItem, error)
	GetJob(ctx context.Context, externalID string) (JobDetail, error)
}

type JobList struct {
	jobs   jobsource.Source
	logger *log.Logger
}

func NewJobListUsecase(jobs jobsource.Source, logger *log.Logger) *JobList {
	return &JobList{jobs: jobs, logger: logger}
}

func (u *JobList) ListJobs(ctx context.Context, params JobListParams) ([]JobListItem, error) {
	limit := params.Limit
	if limit == 0 {
		limit = 20
	}
	if limit < 0 || limit > 100 || params.Offset < 0 {
		return nil, ErrInvalidInput
	}

	// Offset pagination happens in-process: the upstream API has no offset
	// parameter, so over-fetch by the offset and slice.
	docs, err := u.jobs.FetchCandidates(ctx, jobsource.Query{
		Search:   strings.TrimSpace(params.Search),
		Category: strings.TrimSpace(params.Category),
		Company:  strings.TrimSpace(params.Company),
		Limit:    limit + params.Offset,
	})
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] listing fetch failed: %v", err)
		}
		return nil, ErrInternal
	}

	if params.Offset >= len(docs) {
		return []JobListItem{}, nil
	}
	docs = docs[params.Offset:]
	if len(docs) > limit {
		docs = docs[:limit]
	}

	out := make([]JobListItem, 0, len(docs))
	for _, d := range docs {
		out = append(out, listItem(d))
	}
	return out, nil
}

func (u *JobList) GetJob(ctx context.Context, externalID string) (JobDetail, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return JobDetail{}, ErrInvalidInput
	}

	d, found, err := u.jobs.FetchByExternalID(ctx, externalID)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Jobs] job lookup failed: %v", err)
		}
		return JobDetail{}, ErrInternal
	}
	if !found {
		return JobDetail{}, ErrJobNotFound
	}

	return JobDetail{
		JobListItem: listItem(d),
		Description: strings.TrimSpace(text.StripHTML(d.Description)),
	}, nil
}

func listItem(d job.Document) JobListItem {
	return JobListItem{
		JobID:      d.ID,
		ExternalID: d.ExternalID,
		Title:      d.Title,
		Company:    d.Company,
		Logo:       d.CompanyLogo,
		Location:   d.Location,
		URL:        d.URL,
		Category:   d.Category,
		JobType:    d.JobType,
		Salary:     d.Salary,
		Snippet:    snippet(d.Description),
		PostedAt:   d.PublishedAt,
	}
}

func snippet(description string) string {
	s := strings.TrimSpace(text.StripHTML(description))
	if len(s) <= snippetLength {
		return s
	}
	cut := s[:snippetLength]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
