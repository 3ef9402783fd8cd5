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

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, full_name, password_hash)
		 VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.FullName, u.PasswordHash,
	)
	return err
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users
		 SET email = $2, full_name = $3, password_hash = $4, updated_at = now()
		 WHERE id = $1`,
		u.ID, u.Email, u.FullName, u.PasswordHash,
	)
	return err
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
		email,
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, created_at, updated_at
		 FROM users
		 WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, created_at, updated_at
		 FROM users
		 WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

var _ user.Repository = (*PostgresUserRepository)(nil)
