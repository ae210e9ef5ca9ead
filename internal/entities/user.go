package entities

import "time"

type UserRole string

const (
	UserStudent UserRole = "student"
	UserStaff   UserRole = "staff"
)

func (r UserRole) String() string {
	return string(r)
}

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}

type UserModify struct {
	Name         *string
	Email        *string
	Password     *string
	PasswordHash *string
	Role         *UserRole
}
