package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"canteen/internal/entities"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	repository Repository
	txManager  TxManager
	hashCost   int
}

func New(repository Repository, txManager TxManager) *User {
	return &User{
		repository: repository,
		txManager:  txManager,
		hashCost:   bcrypt.DefaultCost,
	}
}

// Signup регистрирует студента. Пароль сохраняется только в виде bcrypt-хеша.
func (s *User) Signup(ctx context.Context, userModify entities.UserModify) (*entities.User, error) {
	if userModify.Name == nil || userModify.Email == nil || userModify.Password == nil {
		return nil, ErrMissingRequiredFields
	}

	name := strings.TrimSpace(*userModify.Name)
	email := NormalizeEmail(*userModify.Email)

	if !isValidName(name) {
		return nil, ErrInvalidName
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !isValidPassword(*userModify.Password) {
		return nil, ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*userModify.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	passwordHash := string(hash)
	role := entities.UserStudent

	var created *entities.User
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		_, err := s.repository.GetByEmail(ctx, email)
		switch {
		case err == nil:
			return ErrUserAlreadyExists
		case !errors.Is(err, ErrUserNotFound):
			return fmt.Errorf("check existing user: %w", err)
		}

		created, err = s.repository.Create(ctx, entities.UserModify{
			Name:         &name,
			Email:        &email,
			PasswordHash: &passwordHash,
			Role:         &role,
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	return created, nil
}

// Login ищет пользователя только по почте, пароль не проверяется.
func (s *User) Login(ctx context.Context, email string) (*entities.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return user, nil
}

func (s *User) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	email = NormalizeEmail(email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	user, err := s.repository.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}
