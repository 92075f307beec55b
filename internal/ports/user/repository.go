package user

import (
	"context"

	"ripple/internal/core/user"
)

// UserRepository is the outbound port for looking up account records.
// This service never creates users; they come from the identity provider side.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// Identity is the verified caller of a request.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProfilePic string `json:"profilePic"`
}
