package user

import (
	"context"
	"errors"
	"fmt"

	"canteen/internal/entities"
	"canteen/internal/repository"
	"canteen/internal/service/user"

	"github.com/jackc/pgx/v5"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, userModifyEntity entities.UserModify) (*entities.User, error) {
	userModifyModel := FromDomainModify(&userModifyEntity)
	if userModifyModel.Name == nil || userModifyModel.Email == nil ||
		userModifyModel.PasswordHash == nil || userModifyModel.Role == nil {
		return nil, user.ErrMissingRequiredFields
	}

	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text, name, email, password_hash, role, created_at
	`

	var userModel UserDB
	err := r.querier.QueryRow(
		ctx,
		query,
		userModifyModel.Name,
		userModifyModel.Email,
		userModifyModel.PasswordHash,
		userModifyModel.Role,
	).Scan(
		&userModel.ID,
		&userModel.Name,
		&userModel.Email,
		&userModel.PasswordHash,
		&userModel.Role,
		&userModel.CreatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, user.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("unexpected user repository create error: %w", err)
	}

	return ToDomain(&userModel), nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT id::text, name, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`

	var userModel UserDB
	err := r.querier.QueryRow(ctx, query, email).
		Scan(
			&userModel.ID,
			&userModel.Name,
			&userModel.Email,
			&userModel.PasswordHash,
			&userModel.Role,
			&userModel.CreatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}

		return nil, fmt.Errorf("unexpected user repository getbyemail error: %w", err)
	}

	return ToDomain(&userModel), nil
}
