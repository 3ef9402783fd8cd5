package usecase

import (
	"context"
	"errors"

	"joblens/internal/domain/user"
	"joblens/internal/infrastructure/cache"
	ucuser "joblens/internal/usecase/user"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error)
	GetMatchingProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error)
	UpdateMatchingProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (user.Profile, error)
}

type User struct {
	svc   *ucuser.Service
	cache *cache.Redis
}

func NewUserUsecase(users user.Repository, profiles user.ProfileRepository, redis *cache.Redis) *User {
	return &User{svc: ucuser.NewService(users, profiles), cache: redis}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.GetMe(ctx, userID)
}

func (u *User) UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error) {
	usr, err := u.svc.UpdateMe(ctx, userID, in)
	if err != nil {
		return user.User{}, translateUserErr(err)
	}
	return usr, nil
}

func (u *User) GetMatchingProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}

	key := cache.ProfileKey(userID.String())
	var cached user.Profile
	if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	p, err := u.svc.GetMatchingProfile(ctx, userID)
	if err != nil {
		return user.Profile{}, translateUserErr(err)
	}
	_ = u.cache.SetJSON(ctx, key, p, 0)
	return p, nil
}

func (u *User) UpdateMatchingProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (user.Profile, error) {
	if userID == uuid.Nil {
		return user.Profile{}, ErrUnauthorized
	}

	p, err := u.svc.UpdateMatchingProfile(ctx, userID, in)
	if err != nil {
		return user.Profile{}, translateUserErr(err)
	}
	_ = u.cache.InvalidateProfile(ctx, userID.String())
	return p, nil
}

func translateUserErr(err error) error {
	if errors.Is(err, ucuser.ErrInvalidInput) {
		return ErrInvalidInput
	}
	return ErrInternal
}
