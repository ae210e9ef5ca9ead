//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=user_test
package user

import (
	"context"

	"canteen/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, userModify entities.UserModify) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
