package user

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength     = 100
	maxPasswordLength = 72 // ограничение bcrypt
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && utf8.RuneCountInString(name) <= maxNameLength
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func isValidPassword(password string) bool {
	return password != "" && len(password) <= maxPasswordLength
}
