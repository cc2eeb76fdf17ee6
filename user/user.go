package user

import (
	"strings"

	"cinevault/errs"
)

var (
	ErrInvalidName        = errs.Errorf(errs.EINVALID, "user: invalid name")
	ErrInvalidEmail       = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrInvalidPassword    = errs.Errorf(errs.EINVALID, "user: invalid password")
	ErrEmailAlreadyExists = errs.Errorf(errs.ECONFLICT, "user: email already exists")
	ErrNotFound           = errs.Errorf(errs.ENOTFOUND, "user not found")
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID    int64
	Name  string
	Email string
	Role  Role

	// Password is the plaintext credential in flight; it is never
	// persisted. PasswordHash is what the store keeps.
	Password     string
	PasswordHash string
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(u.Password) == "" {
		return ErrInvalidPassword
	}
	return nil
}
