package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("enter a valid email address")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenExists        = errors.New("token already issued for user")
	ErrTokenKeyConflict   = errors.New("token key already in use")
	ErrUnauthorized       = errors.New("unauthorized")
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Token is the opaque bearer credential of a user. There is at most one per user.
type Token struct {
	Key       string
	UserID    string
	CreatedAt time.Time
}
