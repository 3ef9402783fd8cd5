package user

import (
	"context"
	"errors"
	"strings"

	"joblens/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

const maxSkills = 100

type UpdateMeInput struct {
	Email    *string
	FullName *string
	Password *string
}

// UpdateProfileInput carries partial updates to the matching profile. Nil
// fields are left untouched; a non-nil empty Skills slice clears the list.
type UpdateProfileInput struct {
	Skills          *[]string
	ExperienceYears *float64
	ResumeText      *string
}

type Service struct {
	users    user.Repository
	profiles user.ProfileRepository
}

func NewService(users user.Repository, profiles user.ProfileRepository) *Service {
	return &Service{users: users, profiles: profiles}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in UpdateMeInput) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.Email = email
	}

	if in.FullName != nil {
		usr.FullName = strings.TrimSpace(*in.FullName)
	}

	if in.Password != nil {
		pw := strings.TrimSpace(*in.Password)
		if len(pw) < 8 {
			return user.User{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, ErrInternal
		}
		usr.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, usr); err != nil {
		return user.User{}, ErrInternal
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func (s *Service) GetMatchingProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	return p, nil
}

func (s *Service) UpdateMatchingProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	p.UserID = userID

	if in.Skills != nil {
		skills, err := normalizeSkills(*in.Skills)
		if err != nil {
			return user.Profile{}, err
		}
		p.Skills = skills
	}

	if in.ExperienceYears != nil {
		if *in.ExperienceYears < 0 || *in.ExperienceYears > 80 {
			return user.Profile{}, ErrInvalidInput
		}
		p.ExperienceYears = *in.ExperienceYears
	}

	if in.ResumeText != nil {
		p.ResumeText = strings.TrimSpace(*in.ResumeText)
	}

	if err := s.profiles.SaveProfile(ctx, p); err != nil {
		return user.Profile{}, ErrInternal
	}

	saved, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return user.Profile{}, ErrInternal
	}
	return saved, nil
}

func normalizeSkills(in []string) ([]string, error) {
	if len(in) > maxSkills {
		return nil, ErrInvalidInput
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
