package domain

import "context"

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
}

type UserStore interface {
	Create(ctx context.Context, email string, passwordHash []byte) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Count(ctx context.Context) (int64, error)
}
