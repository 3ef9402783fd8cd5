package handler

import (
	"errors"
	"strconv"

	"joblens/internal/delivery/http/dto"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/pkg/response"
	"joblens/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	list usecase.JobListUsecase
	recs usecase.RecommendationUsecase
}

func NewJobsHandler(list usecase.JobListUsecase, recs usecase.RecommendationUsecase) *JobsHandler {
	return &JobsHandler{list: list, recs: recs}
}

// Job routes are registered individually in the route registry: listing and
// lookup are public while the match route sits behind the auth middleware.

func (h *JobsHandler) ListJobs(c fiber.Ctx) error {
	search := c.Query("search")
	if search == "" {
		search = c.Query("q")
	}

	params := usecase.JobListParams{
		Search:   search,
		Category: c.Query("category"),
		Company:  c.Query("company_name"),
		Limit:    parseQueryInt(c, "limit", 0),
		Offset:   parseQueryInt(c, "offset", 0),
	}

	items, err := h.list.ListJobs(c.Context(), params)
	if err != nil {
		return mapJobsUsecaseError(err)
	}

	out := make([]dto.JobListItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.JobListItemResponse{
			ID:         it.JobID,
			ExternalID: it.ExternalID,
			Title:      it.Title,
			Company:    it.Company,
			Logo:       it.Logo,
			Location:   it.Location,
			URL:        it.URL,
			Category:   it.Category,
			JobType:    it.JobType,
			Salary:     it.Salary,
			Snippet:    it.Snippet,
			PostedAt:   it.PostedAt,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobListResponse{
		JobCount: len(out),
		Jobs:     out,
	})
}

func (h *JobsHandler) GetJob(c fiber.Ctx) error {
	jobID := c.Params("id")
	if jobID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	d, err := h.list.GetJob(c.Context(), jobID)
	if err != nil {
		return mapJobsUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobDetailResponse{
		JobListItemResponse: dto.JobListItemResponse{
			ID:         d.JobID,
			ExternalID: d.ExternalID,
			Title:      d.Title,
			Company:    d.Company,
			Logo:       d.Logo,
			Location:   d.Location,
			URL:        d.URL,
			Category:   d.Category,
			JobType:    d.JobType,
			Salary:     d.Salary,
			Snippet:    d.Snippet,
			PostedAt:   d.PostedAt,
		},
		Description: d.Description,
	})
}

func (h *JobsHandler) MatchJob(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobID := c.Params("id")
	if jobID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	d, err := h.recs.DetailMatch(c.Context(), userID, jobID)
	if err != nil {
		return mapJobsUsecaseError(err)
	}

	out := dto.MatchDetailResponse{
		JobID:        d.Job.ExternalID,
		Title:        d.Job.Title,
		Company:      d.Job.Company,
		OverallScore: d.Overall,
		Breakdown: dto.MatchBreakdownResponse{
			Skills: dto.SubScoreResponse{
				Score:       d.Skills.Score,
				Explanation: d.Skills.Explanation,
				Details:     d.Skills.Details,
			},
			Experience: dto.SubScoreResponse{
				Score:       d.Experience.Score,
				Explanation: d.Experience.Explanation,
				Details:     d.Experience.Details,
			},
		},
		Recommendations:  d.Recommendations,
		JobRequirements:  d.Requirements,
		MissingSkills:    d.MissingSkills,
		MatchExplanation: d.Explanation,
		ServiceStatus:    d.ServiceStatus,
	}
	if d.Location != nil {
		out.Breakdown.Location = &dto.SubScoreResponse{
			Score:       d.Location.Score,
			Explanation: d.Location.Explanation,
			Details:     d.Location.Details,
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func mapJobsUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
