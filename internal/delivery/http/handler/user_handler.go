package handler

import (
	"errors"

	"joblens/internal/delivery/http/dto"
	"joblens/internal/delivery/http/middleware"
	"joblens/internal/domain/user"
	"joblens/internal/pkg/response"
	"joblens/internal/usecase"
	ucuser "joblens/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateMeRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
}

type updateProfileRequest struct {
	Skills          *[]string `json:"skills"`
	ExperienceYears *float64  `json:"experience_years"`
	ResumeText      *string   `json:"resume_text"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
	r.Get("/me/profile", h.GetProfile)
	r.Put("/me/profile", h.UpdateProfile)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, userResponse(usr))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateMeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.uc.UpdateMe(c.Context(), userID, ucuser.UpdateMeInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, userResponse(usr))
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetMatchingProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(p))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	p, err := h.uc.UpdateMatchingProfile(c.Context(), userID, ucuser.UpdateProfileInput{
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		ResumeText:      req.ResumeText,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(p))
}

func userResponse(usr user.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        usr.ID,
		Email:     usr.Email,
		FullName:  usr.FullName,
		CreatedAt: usr.CreatedAt,
	}
}

func profileResponse(p user.Profile) dto.ProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return dto.ProfileResponse{
		Skills:          skills,
		ExperienceYears: p.ExperienceYears,
		ResumeText:      p.ResumeText,
		UpdatedAt:       p.UpdatedAt,
	}
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
