package user

import "time"

type UserDB struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type UserModifyDB struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
}
