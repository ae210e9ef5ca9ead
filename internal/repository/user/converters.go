package user

import (
	"canteen/internal/entities"
)

func ToDomain(u *UserDB) *entities.User {
	if u == nil {
		return nil
	}

	return &entities.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         entities.UserRole(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

// FromDomainModify не переносит Password: в базу попадает только хеш.
func FromDomainModify(userModify *entities.UserModify) *UserModifyDB {
	if userModify == nil {
		return nil
	}
	userDB := &UserModifyDB{
		Name:         userModify.Name,
		Email:        userModify.Email,
		PasswordHash: userModify.PasswordHash,
	}

	if userModify.Role != nil {
		role := userModify.Role.String()
		userDB.Role = &role
	}

	return userDB
}
