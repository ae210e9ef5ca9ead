//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=user_login_post_test
package user_login_post

import (
	"context"

	"canteen/internal/entities"
	"canteen/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Login(ctx context.Context, email string) (*entities.User, error)
}

type Validator interface {
	Struct(s any) error
}
