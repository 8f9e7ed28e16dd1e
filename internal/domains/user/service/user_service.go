package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/user"
)

type userService struct {
	repo user.Repository
}

func NewUserService(repo user.Repository) user.Service {
	return &userService{repo: repo}
}

// Create - validate format; trùng username/email do unique constraint của DB bắt
func (s *userService) Create(ctx context.Context, req user.CreateUserRequest) (*user.User, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("[UserService] User created")
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*user.User, bool, error) {
	return s.repo.FindByID(ctx, id)
}
