package repository

import (
	"context"
	"database/sql"
	"errors"

	"joblens/internal/database"
	"joblens/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// GetProfile never reports a missing row as an error. Matching treats an
// unsaved profile as empty.
func (r *PostgresProfileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, skills, experience_years, resume_text, updated_at
		 FROM user_profiles
		 WHERE user_id = $1`,
		userID,
	)

	var p user.Profile
	err := row.Scan(&p.UserID, &p.Skills, &p.ExperienceYears, &p.ResumeText, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.Profile{UserID: userID, Skills: []string{}}, nil
		}
		return user.Profile{}, err
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return p, nil
}

func (r *PostgresProfileRepository) SaveProfile(ctx context.Context, p user.Profile) error {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_profiles (user_id, skills, experience_years, resume_text)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET skills = EXCLUDED.skills,
		     experience_years = EXCLUDED.experience_years,
		     resume_text = EXCLUDED.resume_text,
		     updated_at = now()`,
		p.UserID, skills, p.ExperienceYears, p.ResumeText,
	)
	return err
}

var _ user.ProfileRepository = (*PostgresProfileRepository)(nil)
