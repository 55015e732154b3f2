package services

import (
	"context"

	"github.com/freshmart/api/app/models"
)

// UserService exposes user read operations.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// All returns every registered user.
func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}
