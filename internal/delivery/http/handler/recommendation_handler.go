package handler

import (
	"joblens/internal/delivery/http/dto"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/pkg/response"
	"joblens/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

type processResumeRequest struct {
	ResumeText string `json:"resume_text"`
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/recommendations", h.GetRecommendations)
	r.Get("/recommendations/skills", h.GetSkillRecommendations)
	r.Post("/resume/process", h.ProcessResume)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.Recommend(c.Context(), userID, usecase.RecommendParams{
		Search: c.Query("search"),
		Limit:  parseQueryInt(c, "limit", 0),
	})
	if err != nil {
		return mapJobsUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, scoredJobResponses(items))
}

func (h *RecommendationHandler) GetSkillRecommendations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.RecommendBySkills(c.Context(), userID, parseQueryInt(c, "limit", 0))
	if err != nil {
		return mapJobsUsecaseError(err)
	}

	out := make([]dto.SkillRecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SkillRecommendationResponse{
			JobID:         it.Job.ID,
			ExternalID:    it.Job.ExternalID,
			Title:         it.Job.Title,
			Company:       it.Job.Company,
			URL:           it.Job.URL,
			MatchScore:    it.Score,
			MatchedSkills: it.Matched,
			MissingSkills: it.Missing,
			Explanation:   it.Explanation,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *RecommendationHandler) ProcessResume(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req processResumeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ProcessResume(c.Context(), userID, req.ResumeText)
	if err != nil {
		return mapJobsUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, scoredJobResponses(items))
}

func scoredJobResponses(items []usecase.ScoredJob) []dto.RecommendedJobResponse {
	out := make([]dto.RecommendedJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.RecommendedJobResponse{
			JobID:         it.Job.ID,
			ExternalID:    it.Job.ExternalID,
			Title:         it.Job.Title,
			Company:       it.Job.Company,
			Location:      it.Job.Location,
			URL:           it.Job.URL,
			MatchScore:    it.Score,
			ScoreSource:   it.Source,
			MatchedSkills: it.Matched,
			MissingSkills: it.Missing,
		})
	}
	return out
}
