package jobsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"joblens/internal/domain/job"

	"github.com/google/uuid"
)

// Source supplies candidate job documents for a scoring pass. The
// recommendation pipeline treats any fetch failure as zero candidates.
type Source interface {
	FetchCandidates(ctx context.Context, q Query) ([]job.Document, error)
	FetchByExternalID(ctx context.Context, externalID string) (job.Document, bool, error)
}

type Query struct {
	Search   string
	Category string
	Company  string
	Limit    int
}

const (
	defaultLimit = 50
	maxLimit     = 100
)

type remotiveJob struct {
	ID              int    `json:"id"`
	URL             string `json:"url"`
	Title           string `json:"title"`
	CompanyName     string `json:"company_name"`
	CompanyLogo     string `json:"company_logo"`
	Category        string `json:"category"`
	JobType         string `json:"job_type"`
	PublicationDate string `json:"publication_date"`
	Location        string `json:"candidate_required_location"`
	Salary          string `json:"salary"`
	Description     string `json:"description"`
}

type remotiveResponse struct {
	JobCount int           `json:"job-count"`
	Jobs     []remotiveJob `json:"jobs"`
}

type HTTPSource struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

func NewHTTPSource(baseURL string, logger *log.Logger) *HTTPSource {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "https://remotive.com/api"
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (s *HTTPSource) FetchCandidates(ctx context.Context, q Query) ([]job.Document, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Company != "" {
		params.Set("company_name", q.Company)
	}

	out, err := s.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	docs := make([]job.Document, 0, len(out.Jobs))
	for _, rj := range out.Jobs {
		docs = append(docs, toDocument(rj))
	}
	return docs, nil
}

// FetchByExternalID scans the current listing for one posting. The job board
// exposes no per-job endpoint, so this pulls a full page and filters.
func (s *HTTPSource) FetchByExternalID(ctx context.Context, externalID string) (job.Document, bool, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", maxLimit))

	out, err := s.fetch(ctx, params)
	if err != nil {
		return job.Document{}, false, err
	}

	for _, rj := range out.Jobs {
		if fmt.Sprintf("%d", rj.ID) == externalID {
			return toDocument(rj), true, nil
		}
	}
	return job.Document{}, false, nil
}

func (s *HTTPSource) fetch(ctx context.Context, params url.Values) (remotiveResponse, error) {
	if s == nil || s.client == nil {
		return remotiveResponse{}, errors.New("nil job source")
	}

	endpoint := s.baseURL + "/remote-jobs?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return remotiveResponse{}, err
	}
	req.Header.Set("User-Agent", "JobLens-Backend/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		s.warn("fetch failed: %v", err)
		return remotiveResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.warn("fetch returned status=%d", resp.StatusCode)
		return remotiveResponse{}, fmt.Errorf("job board status %d", resp.StatusCode)
	}

	var out remotiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		s.warn("fetch decode failed: %v", err)
		return remotiveResponse{}, err
	}
	return out, nil
}

func toDocument(rj remotiveJob) job.Document {
	return job.Document{
		ID:          uuid.New(),
		ExternalID:  fmt.Sprintf("%d", rj.ID),
		Title:       rj.Title,
		Company:     rj.CompanyName,
		CompanyLogo: rj.CompanyLogo,
		Location:    rj.Location,
		URL:         rj.URL,
		Description: rj.Description,
		Category:    rj.Category,
		JobType:     rj.JobType,
		Salary:      rj.Salary,
		PublishedAt: parsePublicationDate(rj.PublicationDate),
	}
}

// parsePublicationDate handles the board's "2020-02-15T10:23:26" format.
// Unparseable dates collapse to now.
func parsePublicationDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}

func (s *HTTPSource) warn(format string, args ...any) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf("[JobSource] "+format, args...)
}

var _ Source = (*HTTPSource)(nil)
