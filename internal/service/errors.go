package service

import "errors"

var (
	ErrEmptyText          = errors.New("text must not be empty")
	ErrEmptyURL           = errors.New("url must not be empty")
	ErrNotFound           = errors.New("record not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
