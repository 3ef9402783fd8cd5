package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ProfileRepository persists matching profiles. GetProfile returns an empty
// profile, not ErrNotFound, when the user has never saved one.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error)
	SaveProfile(ctx context.Context, p Profile) error
}
