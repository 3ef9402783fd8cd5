package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"joblens/internal/domain/corpus"
	"joblens/internal/domain/job"
	"joblens/internal/domain/user"
	"joblens/internal/infrastructure/jobsource"
	"joblens/internal/infrastructure/oracle"

	"github.com/google/uuid"
)

type fakeProfiles struct {
	profile user.Profile
	err     error
	saved   []user.Profile
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID uuid.UUID) (user.Profile, error) {
	if f.err != nil {
		return user.Profile{}, f.err
	}
	p := f.profile
	p.UserID = userID
	return p, nil
}

func (f *fakeProfiles) SaveProfile(_ context.Context, p user.Profile) error {
	f.saved = append(f.saved, p)
	f.profile = p
	return nil
}

type fakeSource struct {
	docs    []job.Document
	err     error
	fetches int
}

func (f *fakeSource) FetchCandidates(_ context.Context, _ jobsource.Query) ([]job.Document, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func (f *fakeSource) FetchByExternalID(_ context.Context, externalID string) (job.Document, bool, error) {
	if f.err != nil {
		return job.Document{}, false, f.err
	}
	for _, d := range f.docs {
		if d.ExternalID == externalID {
			return d, true, nil
		}
	}
	return job.Document{}, false, nil
}

type fakeOracle struct {
	mu      sync.Mutex
	calls   int
	predict func(req oracle.PredictRequest) (oracle.Prediction, error)
}

func (f *fakeOracle) Predict(_ context.Context, req oracle.PredictRequest) (oracle.Prediction, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.predict == nil {
		return oracle.Prediction{}, oracle.ErrUnavailable
	}
	return f.predict(req)
}

func (f *fakeOracle) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func doc(id, title, description string) job.Document {
	return job.Document{ID: uuid.New(), ExternalID: id, Title: title, Description: description}
}

func skilledProfile() user.Profile {
	return user.Profile{
		Skills:     []string{"python", "docker"},
		ResumeText: "python and docker in production",
	}
}

func newRecommendation(profiles *fakeProfiles, src *fakeSource, orc *fakeOracle) *Recommendation {
	return NewRecommendationUsecase(profiles, src, orc, corpus.Table{}, nil)
}

func TestRecommend_EmptyProfileSkipsScoring(t *testing.T) {
	src := &fakeSource{docs: []job.Document{doc("1", "Engineer", "python")}}
	orc := &fakeOracle{}
	u := newRecommendation(&fakeProfiles{}, src, orc)

	got, err := u.Recommend(context.Background(), uuid.New(), RecommendParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	if orc.callCount() != 0 {
		t.Fatalf("expected zero scoring calls, got %d", orc.callCount())
	}
	if src.fetches != 0 {
		t.Fatalf("expected no candidate fetch, got %d", src.fetches)
	}
}

func TestRecommend_PartialFailuresOmitted(t *testing.T) {
	src := &fakeSource{docs: []job.Document{
		doc("1", "Keep", "python"),
		doc("2", "Drop", "python"),
	}}
	orc := &fakeOracle{predict: func(req oracle.PredictRequest) (oracle.Prediction, error) {
		if req.JobTitle == "Drop" {
			return oracle.Prediction{}, oracle.ErrUnavailable
		}
		return oracle.Prediction{MatchScore: 80}, nil
	}}
	u := newRecommendation(&fakeProfiles{profile: skilledProfile()}, src, orc)

	got, err := u.Recommend(context.Background(), uuid.New(), RecommendParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(got))
	}
	if got[0].Job.Title != "Keep" || got[0].Source != "ml" {
		t.Fatalf("unexpected result: %+v", got[0])
	}
}

func TestRecommend_AllFailuresUseLocalFormula(t *testing.T) {
	src := &fakeSource{docs: []job.Document{
		doc("1", "Platform Engineer", "python and docker shop"),
		doc("2", "Gardener", "no tech at all"),
	}}
	orc := &fakeOracle{}
	u := newRecommendation(&fakeProfiles{profile: skilledProfile()}, src, orc)

	got, err := u.Recommend(context.Background(), uuid.New(), RecommendParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both jobs via local formula, got %d", len(got))
	}
	for _, r := range got {
		if r.Source != "heuristic" {
			t.Fatalf("expected heuristic source, got %q", r.Source)
		}
	}
	// python and docker shared with the first job: 50 + 2*5
	if got[0].Job.Title != "Platform Engineer" || got[0].Score != 60 {
		t.Fatalf("unexpected top result: %+v", got[0])
	}
}

func TestRecommend_ThresholdIsStrict(t *testing.T) {
	src := &fakeSource{docs: []job.Document{
		doc("1", "AtThreshold", "x"),
		doc("2", "Above", "x"),
	}}
	orc := &fakeOracle{predict: func(req oracle.PredictRequest) (oracle.Prediction, error) {
		if req.JobTitle == "AtThreshold" {
			return oracle.Prediction{MatchScore: 30}, nil
		}
		return oracle.Prediction{MatchScore: 30.5}, nil
	}}
	u := newRecommendation(&fakeProfiles{profile: skilledProfile()}, src, orc)

	got, err := u.Recommend(context.Background(), uuid.New(), RecommendParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Job.Title != "Above" {
		t.Fatalf("expected only the job above the threshold, got %+v", got)
	}
}

func TestRecommend_StableSortDescending(t *testing.T) {
	src := &fakeSource{docs: []job.Document{
		doc("1", "A", "x"),
		doc("2", "B", "x"),
		doc("3", "C", "x"),
	}}
	scores := map[string]float64{"A": 80, "B": 80, "C": 90}
	orc := &fakeOracle{predict: func(req oracle.PredictRequest) (oracle.Prediction, error) {
		return oracle.Prediction{MatchScore: scores[req.JobTitle]}, nil
	}}
	u := newRecommendation(&fakeProfiles{profile: skilledProfile()}, src, orc)

	got, err := u.Recommend(context.Background(), uuid.New(), RecommendParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := []string{"C", "A", "B"}
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	for i, w := range want {
		if got[i].Job.Title != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, got[i].Job.Title)
		}
	}
}

func TestRecommend_TruncatesToLimit(t *testing.T) {
	var docs []job.Document
	for i := 0; i < 15; i++ {
		docs = append(docs, doc(fmt.Sprintf("%d", i), fmt.Sprintf("Job %d", i), "x"))
	}
	src := &fakeSource{docs: docs}
	orc := &fakeOracle{predict: func(req oracle.PredictRequest) (oracle.Prediction, error) {
		return oracle.Prediction{MatchScore: 75}, nil
	}}
	u := newRecommendation(&fakeProfiles{profile: skilledProfile()}, src, orc)

	got, err := u.Recommend(context.Background(), uuid.New(), RecommendParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != defaultRecommendLimit {
		t.Fatalf("expected %d results, got %d", defaultRecommendLimit, len(got))
	}
}

func TestRecommend_SourceFailureMeansNoCandidates(t *testing.T) {
	src := &fakeSource{err: errors.New("board down")}
	orc := &fakeOracle{}
	u := newRecommendation(&fakeProfiles{profile: skilledProfile()}, src, orc)

	got, err := u.Recommend(context.Background(), uuid.New(), RecommendParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	if orc.callCount() != 0 {
		t.Fatalf("expected no scoring calls, got %d", orc.callCount())
	}
}

func TestRecommend_NilUser(t *testing.T) {
	u := newRecommendation(&fakeProfiles{}, &fakeSource{}, &fakeOracle{})
	if _, err := u.Recommend(context.Background(), uuid.Nil, RecommendParams{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRecommendBySkills(t *testing.T) {
	src := &fakeSource{docs: []job.Document{
		doc("1", "Python Role", "python everywhere"),
		doc("2", "Gardening", "plants and soil"),
	}}
	profiles := &fakeProfiles{profile: user.Profile{Skills: []string{"python"}}}
	u := newRecommendation(profiles, src, &fakeOracle{})

	got, err := u.RecommendBySkills(context.Background(), uuid.New(), 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected zero-score job filtered out, got %d results", len(got))
	}
	if got[0].Job.Title != "Python Role" || got[0].Score != 100 {
		t.Fatalf("unexpected result: %+v", got[0])
	}
	if got[0].Explanation != "Weighted skill overlap using dataset IDF model" {
		t.Fatalf("unexpected explanation: %q", got[0].Explanation)
	}
}

func TestDetailMatch_UnknownJob(t *testing.T) {
	u := newRecommendation(&fakeProfiles{profile: skilledProfile()}, &fakeSource{}, &fakeOracle{})
	if _, err := u.DetailMatch(context.Background(), uuid.New(), "missing"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestDetailMatch_ActiveService(t *testing.T) {
	src := &fakeSource{docs: []job.Document{doc("7", "Backend Engineer", "python work")}}
	orc := &fakeOracle{predict: func(req oracle.PredictRequest) (oracle.Prediction, error) {
		return oracle.Prediction{
			MatchScore:      70,
			RequiredSkills:  []string{"python", "docker"},
			ResumeSkills:    []string{"python"},
			SkillOverlap:    1,
			MissingSkills:   []string{"docker"},
			ExperienceMatch: 0.8,
			Recommendations: "Consider learning: docker",
		}, nil
	}}
	u := newRecommendation(&fakeProfiles{profile: skilledProfile()}, src, orc)

	d, err := u.DetailMatch(context.Background(), uuid.New(), "7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.ServiceStatus != "ML service active" {
		t.Fatalf("unexpected status: %q", d.ServiceStatus)
	}
	if d.Overall != 70 {
		t.Fatalf("expected overall 70, got %f", d.Overall)
	}
	if d.Skills.Score != 0.5 {
		t.Fatalf("expected skills sub-score 0.5, got %f", d.Skills.Score)
	}
	if d.Location != nil {
		t.Fatalf("expected no location breakdown on the remote path")
	}
	if len(d.MissingSkills) != 1 || d.MissingSkills[0] != "docker" {
		t.Fatalf("unexpected missing skills: %v", d.MissingSkills)
	}
}

func TestDetailMatch_FallbackWhenUnavailable(t *testing.T) {
	src := &fakeSource{docs: []job.Document{doc("7", "Senior Engineer", "senior python and docker role")}}
	u := newRecommendation(&fakeProfiles{profile: skilledProfile()}, src, &fakeOracle{})

	d, err := u.DetailMatch(context.Background(), uuid.New(), "7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.ServiceStatus != "Fallback analysis (ML service unavailable)" {
		t.Fatalf("unexpected status: %q", d.ServiceStatus)
	}
	if d.Location == nil {
		t.Fatalf("expected location breakdown on the fallback path")
	}
	if d.Overall <= 0 || d.Overall > 100 {
		t.Fatalf("expected overall on the 0-100 scale, got %f", d.Overall)
	}
}

func TestDetailMatch_EmptyProfileUsesFallback(t *testing.T) {
	src := &fakeSource{docs: []job.Document{doc("7", "Engineer", "python")}}
	orc := &fakeOracle{predict: func(req oracle.PredictRequest) (oracle.Prediction, error) {
		return oracle.Prediction{MatchScore: 99}, nil
	}}
	u := newRecommendation(&fakeProfiles{}, src, orc)

	d, err := u.DetailMatch(context.Background(), uuid.New(), "7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if orc.callCount() != 0 {
		t.Fatalf("expected no scoring call for empty profile, got %d", orc.callCount())
	}
	if d.ServiceStatus != "Fallback analysis (ML service unavailable)" {
		t.Fatalf("unexpected status: %q", d.ServiceStatus)
	}
}

func TestProcessResume(t *testing.T) {
	profiles := &fakeProfiles{profile: skilledProfile()}
	src := &fakeSource{docs: []job.Document{doc("1", "Engineer", "python")}}
	orc := &fakeOracle{predict: func(req oracle.PredictRequest) (oracle.Prediction, error) {
		if req.ResumeText != "rewritten resume with python" {
			t.Errorf("expected updated resume text, got %q", req.ResumeText)
		}
		return oracle.Prediction{MatchScore: 80}, nil
	}}
	u := newRecommendation(profiles, src, orc)

	got, err := u.ProcessResume(context.Background(), uuid.New(), "rewritten resume with python")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(got))
	}
	if len(profiles.saved) != 1 || profiles.saved[0].ResumeText != "rewritten resume with python" {
		t.Fatalf("expected resume persisted, got %+v", profiles.saved)
	}
}

func TestProcessResume_EmptyText(t *testing.T) {
	u := newRecommendation(&fakeProfiles{}, &fakeSource{}, &fakeOracle{})
	if _, err := u.ProcessResume(context.Background(), uuid.New(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
