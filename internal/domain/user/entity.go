package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile carries everything the matching pipeline reads about a user. A user
// who never filled in their profile gets the zero value, which scores as an
// empty skill set rather than an error.
type Profile struct {
	UserID          uuid.UUID
	Skills          []string
	ExperienceYears float64
	ResumeText      string
	UpdatedAt       time.Time
}

func (p Profile) IsEmpty() bool {
	return len(p.Skills) == 0 && p.ResumeText == ""
}
