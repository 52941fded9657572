// Package services holds the typed backend calls of the banking client.
// Every call travels through the guarded request pipeline of the APIClient
// it was built with, so failures arrive as *client.APIError.
package services

import (
	"context"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
)

// AuthService exchanges credentials for an identity. It satisfies
// session.AuthAPI.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Identity, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.Identity, error)
}

type authService struct {
	api *client.APIClient
}

func NewAuthService(api *client.APIClient) AuthService {
	return &authService{api: api}
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.Identity, error) {
	id, err := client.Post[models.Identity](ctx, s.api, pathLogin, req)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.Identity, error) {
	id, err := client.Post[models.Identity](ctx, s.api, pathRegister, req)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
