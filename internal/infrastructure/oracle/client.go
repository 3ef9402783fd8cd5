package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable covers every way the scoring service can fail a call:
// timeout, transport error, non-2xx status, or a response that does not parse.
// Callers switch to local fallback scoring; the condition is never fatal.
var ErrUnavailable = errors.New("match oracle unavailable")

const defaultTimeout = 30 * time.Second

// PredictRequest is the payload sent to the scoring service. ResumeText may
// be empty; the service can work from the skill list alone (and vice versa).
type PredictRequest struct {
	JobDescription      string   `json:"job_description"`
	ResumeText          string   `json:"resume_text"`
	UserSkills          []string `json:"user_skills"`
	UserExperience      float64  `json:"user_experience"`
	JobTitle            string   `json:"job_title,omitempty"`
	JobRequirements     string   `json:"job_requirements,omitempty"`
	JobResponsibilities string   `json:"job_responsibilities,omitempty"`
}

// Prediction is the decoded, default-filled scoring result.
type Prediction struct {
	MatchScore      float64
	RequiredSkills  []string
	ResumeSkills    []string
	SkillOverlap    int
	MissingSkills   []string
	ExperienceMatch float64
	Recommendations string
}

type MatchOracle interface {
	Predict(ctx context.Context, req PredictRequest) (Prediction, error)
}

type Client struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

func NewClient(baseURL string, logger *log.Logger) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

// wire mirrors the service's envelope. Optional fields are pointers so that
// absent and zero-valued fields are distinguishable; defaults are applied in
// one place, in toPrediction.
type wireResponse struct {
	Success bool      `json:"success"`
	Error   *string   `json:"error"`
	Data    *wireData `json:"data"`
}

type wireData struct {
	MatchScore      *float64 `json:"match_score"`
	RequiredSkills  []string `json:"required_skills"`
	ResumeSkills    []string `json:"resume_skills"`
	SkillOverlap    *int     `json:"skill_overlap"`
	MissingSkills   []string `json:"missing_skills"`
	ExperienceMatch *float64 `json:"experience_match"`
	Recommendations *string  `json:"recommendations"`
}

const defaultRecommendation = "Continue developing relevant skills"

func (d *wireData) toPrediction() Prediction {
	p := Prediction{
		RequiredSkills:  []string{},
		ResumeSkills:    []string{},
		MissingSkills:   []string{},
		Recommendations: defaultRecommendation,
	}
	if d == nil {
		return p
	}
	if d.MatchScore != nil {
		p.MatchScore = *d.MatchScore
	}
	if d.RequiredSkills != nil {
		p.RequiredSkills = d.RequiredSkills
	}
	if d.ResumeSkills != nil {
		p.ResumeSkills = d.ResumeSkills
	}
	if d.SkillOverlap != nil {
		p.SkillOverlap = *d.SkillOverlap
	}
	if d.MissingSkills != nil {
		p.MissingSkills = d.MissingSkills
	}
	if d.ExperienceMatch != nil {
		p.ExperienceMatch = *d.ExperienceMatch
	}
	if d.Recommendations != nil && strings.TrimSpace(*d.Recommendations) != "" {
		p.Recommendations = *d.Recommendations
	}
	return p
}

// Predict issues one stateless scoring call. Every failure mode maps to
// ErrUnavailable so callers only branch once.
func (c *Client) Predict(ctx context.Context, req PredictRequest) (Prediction, error) {
	if c == nil || c.client == nil {
		return Prediction{}, ErrUnavailable
	}

	if req.UserSkills == nil {
		req.UserSkills = []string{}
	}

	b, err := json.Marshal(req)
	if err != nil {
		return Prediction{}, ErrUnavailable
	}

	endpoint := c.baseURL + "/predict"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return Prediction{}, ErrUnavailable
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.warn("predict call failed: %v", err)
		return Prediction{}, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.warn("predict returned status=%d", resp.StatusCode)
		return Prediction{}, ErrUnavailable
	}

	var out wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.warn("predict response decode failed: %v", err)
		return Prediction{}, ErrUnavailable
	}
	if !out.Success || out.Data == nil {
		return Prediction{}, ErrUnavailable
	}

	return out.Data.toPrediction(), nil
}

func (c *Client) warn(format string, args ...any) {
	if c == nil || c.logger == nil {
		return
	}
	c.logger.Printf("[Oracle] "+format, args...)
}

var _ MatchOracle = (*Client)(nil)
