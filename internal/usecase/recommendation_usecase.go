package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"joblens/internal/domain/corpus"
	"joblens/internal/domain/heuristic"
	"joblens/internal/domain/job"
	"joblens/internal/domain/matching"
	"joblens/internal/domain/text"
	"joblens/internal/domain/user"
	"joblens/internal/infrastructure/jobsource"
	"joblens/internal/infrastructure/oracle"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrJobNotFound = errors.New("Job not found")

const (
	// minRecommendScore is a strict lower bound: a job scoring exactly this
	// value is not recommended.
	minRecommendScore = 30.0

	defaultRecommendLimit = 10
	maxRecommendLimit     = 50

	// oracleConcurrency bounds the fan-out of scoring calls per batch.
	oracleConcurrency = 8
)

type RecommendParams struct {
	Search string
	Limit  int
}

// ScoredJob is one recommended posting. Source records which scorer produced
// the number: "ml" for the remote service, "heuristic" for the local batch
// fallback.
type ScoredJob struct {
	Job     job.Document
	Score   float64
	Source  string
	Matched []string
	Missing []string
}

// SkillRecommendation is the dataset-weighted variant that never touches the
// remote scorer.
type SkillRecommendation struct {
	Job         job.Document
	Score       float64
	Matched     []string
	Missing     []string
	Explanation string
}

// MatchDetail is the full single-job breakdown. Overall is on a 0 to 100
// scale on both the remote and the fallback path. Location is only present
// when the fallback analyzer produced the breakdown.
type MatchDetail struct {
	Job             job.Document
	Overall         float64
	Skills          heuristic.SubScore
	Experience      heuristic.SubScore
	Location        *heuristic.SubScore
	Recommendations []string
	Requirements    []string
	MissingSkills   []string
	Explanation     string
	ServiceStatus   string
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, userID uuid.UUID, params RecommendParams) ([]ScoredJob, error)
	RecommendBySkills(ctx context.Context, userID uuid.UUID, limit int) ([]SkillRecommendation, error)
	DetailMatch(ctx context.Context, userID uuid.UUID, externalJobID string) (MatchDetail, error)
	ProcessResume(ctx context.Context, userID uuid.UUID, resumeText string) ([]ScoredJob, error)
}

type Recommendation struct {
	profiles user.ProfileRepository
	jobs     jobsource.Source
	oracle   oracle.MatchOracle
	weights  corpus.Table
	logger   *log.Logger
}

func NewRecommendationUsecase(
	profiles user.ProfileRepository,
	jobs jobsource.Source,
	matchOracle oracle.MatchOracle,
	weights corpus.Table,
	logger *log.Logger,
) *Recommendation {
	return &Recommendation{
		profiles: profiles,
		jobs:     jobs,
		oracle:   matchOracle,
		weights:  weights,
		logger:   logger,
	}
}

// Recommend scores the current job board listing against the user's profile.
// Jobs whose remote scoring call fails are dropped from the result; only when
// every call fails does the whole batch fall back to the local formula. A
// profile with no skills and no resume yields an empty list without a single
// scoring call.
func (u *Recommendation) Recommend(ctx context.Context, userID uuid.UUID, params RecommendParams) ([]ScoredJob, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultRecommendLimit
	}
	if limit > maxRecommendLimit {
		limit = maxRecommendLimit
	}

	profile, err := u.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if profile.IsEmpty() {
		return []ScoredJob{}, nil
	}

	docs, err := u.jobs.FetchCandidates(ctx, jobsource.Query{Search: params.Search})
	if err != nil {
		u.warn("candidate fetch failed: %v", err)
		return []ScoredJob{}, nil
	}
	if len(docs) == 0 {
		return []ScoredJob{}, nil
	}

	scores := make([]float64, len(docs))
	scored := make([]bool, len(docs))
	missing := make([][]string, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(oracleConcurrency)
	for i, d := range docs {
		g.Go(func() error {
			p, err := u.oracle.Predict(gctx, oracle.PredictRequest{
				JobDescription: text.StripHTML(d.Description),
				ResumeText:     profile.ResumeText,
				UserSkills:     profile.Skills,
				UserExperience: profile.ExperienceYears,
				JobTitle:       d.Title,
			})
			if err != nil {
				return nil
			}
			scores[i] = p.MatchScore
			scored[i] = true
			missing[i] = p.MissingSkills
			return nil
		})
	}
	_ = g.Wait()

	anyScored := false
	for _, ok := range scored {
		if ok {
			anyScored = true
			break
		}
	}
	if !anyScored {
		u.warn("scoring service unavailable for entire batch, using local formula")
		basis := profile.ResumeText
		if basis == "" {
			basis = strings.Join(profile.Skills, " ")
		}
		for i, d := range docs {
			scores[i] = float64(heuristic.BatchScore(basis, d.Title, text.StripHTML(d.Description)))
			scored[i] = true
		}
	}

	source := "ml"
	if !anyScored {
		source = "heuristic"
	}

	out := make([]ScoredJob, 0, len(docs))
	for i, d := range docs {
		if !scored[i] || scores[i] <= minRecommendScore {
			continue
		}
		local := matching.ComputeWeighted(profile.Skills, d.Text(), u.weights)
		miss := missing[i]
		if miss == nil {
			miss = local.Missing
		}
		out = append(out, ScoredJob{
			Job:     d,
			Score:   scores[i],
			Source:  source,
			Matched: local.Matched,
			Missing: miss,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RecommendBySkills ranks the listing purely by weighted skill overlap with
// the corpus-derived term weights.
func (u *Recommendation) RecommendBySkills(ctx context.Context, userID uuid.UUID, limit int) ([]SkillRecommendation, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 {
		limit = defaultRecommendLimit
	}
	if limit > maxRecommendLimit {
		limit = maxRecommendLimit
	}

	profile, err := u.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(profile.Skills) == 0 {
		return []SkillRecommendation{}, nil
	}

	docs, err := u.jobs.FetchCandidates(ctx, jobsource.Query{})
	if err != nil {
		u.warn("candidate fetch failed: %v", err)
		return []SkillRecommendation{}, nil
	}

	out := make([]SkillRecommendation, 0, len(docs))
	for _, d := range docs {
		r := matching.ComputeWeighted(profile.Skills, d.Title+"\n"+text.StripHTML(d.Description), u.weights)
		if r.Score <= 0 {
			continue
		}
		out = append(out, SkillRecommendation{
			Job:         d,
			Score:       r.Score,
			Matched:     r.Matched,
			Missing:     r.Missing,
			Explanation: "Weighted skill overlap using dataset IDF model",
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DetailMatch produces the full breakdown for one posting. An empty profile
// or an unavailable scoring service both route to the local analyzer.
func (u *Recommendation) DetailMatch(ctx context.Context, userID uuid.UUID, externalJobID string) (MatchDetail, error) {
	if userID == uuid.Nil {
		return MatchDetail{}, ErrUnauthorized
	}

	doc, found, err := u.jobs.FetchByExternalID(ctx, externalJobID)
	if err != nil {
		return MatchDetail{}, ErrInternal
	}
	if !found {
		return MatchDetail{}, ErrJobNotFound
	}

	profile, err := u.profiles.GetProfile(ctx, userID)
	if err != nil {
		return MatchDetail{}, ErrInternal
	}

	description := text.StripHTML(doc.Description)

	if profile.IsEmpty() {
		return u.fallbackDetail(doc, description), nil
	}

	p, err := u.oracle.Predict(ctx, oracle.PredictRequest{
		JobDescription: description,
		ResumeText:     profile.ResumeText,
		UserSkills:     profile.Skills,
		UserExperience: profile.ExperienceYears,
		JobTitle:       doc.Title,
	})
	if err != nil {
		return u.fallbackDetail(doc, description), nil
	}

	required := len(p.RequiredSkills)
	if required < 1 {
		required = 1
	}

	return MatchDetail{
		Job:     doc,
		Overall: p.MatchScore,
		Skills: heuristic.SubScore{
			Score:       float64(p.SkillOverlap) / float64(required),
			Explanation: fmt.Sprintf("Found %d matching skills out of %d required", p.SkillOverlap, len(p.RequiredSkills)),
			Details:     p.ResumeSkills,
		},
		Experience: heuristic.SubScore{
			Score:       p.ExperienceMatch,
			Explanation: "Experience level matches job requirements",
			Details:     []string{"Based on job description analysis"},
		},
		Recommendations: []string{p.Recommendations},
		Requirements:    p.RequiredSkills,
		MissingSkills:   p.MissingSkills,
		Explanation: fmt.Sprintf(
			"Based on ML analysis of job requirements for %s at %s, this position has a %d%% compatibility match.",
			doc.Title, doc.Company, int(p.MatchScore),
		),
		ServiceStatus: "ML service active",
	}, nil
}

// ProcessResume stores the resume text on the user's profile and returns a
// fresh recommendation run against it.
func (u *Recommendation) ProcessResume(ctx context.Context, userID uuid.UUID, resumeText string) ([]ScoredJob, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, ErrInvalidInput
	}

	profile, err := u.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	profile.UserID = userID
	profile.ResumeText = resumeText
	if err := u.profiles.SaveProfile(ctx, profile); err != nil {
		return nil, ErrInternal
	}

	return u.Recommend(ctx, userID, RecommendParams{})
}

func (u *Recommendation) fallbackDetail(doc job.Document, description string) MatchDetail {
	a := heuristic.AnalyzeJob(doc.Title, description, doc.Location)
	loc := a.Location
	return MatchDetail{
		Job:             doc,
		Overall:         a.Overall * 100,
		Skills:          a.Skills,
		Experience:      a.Experience,
		Location:        &loc,
		Recommendations: a.Recommendations,
		Requirements:    a.Requirements,
		MissingSkills:   []string{},
		Explanation:     a.Explanation + " Note: ML service unavailable.",
		ServiceStatus:   "Fallback analysis (ML service unavailable)",
	}
}

func (u *Recommendation) warn(format string, args ...any) {
	if u == nil || u.logger == nil {
		return
	}
	u.logger.Printf("[Recommendation] "+format, args...)
}

var _ RecommendationUsecase = (*Recommendation)(nil)
