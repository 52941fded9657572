package services

import (
	"context"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
)

type AccountService interface {
	Get(ctx context.Context) (*models.Account, error)
}

type accountService struct {
	api *client.APIClient
}

func NewAccountService(api *client.APIClient) AccountService {
	return &accountService{api: api}
}

// Get returns the account of the signed-in customer.
func (s *accountService) Get(ctx context.Context) (*models.Account, error) {
	a, err := client.Get[models.Account](ctx, s.api, pathAccount)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
