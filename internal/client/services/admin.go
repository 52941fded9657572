package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/validation"
)

// AdminService covers user management.
type AdminService interface {
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, id int64) (*models.User, error)
	UsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Create(ctx context.Context, req models.UserRequest) (*models.User, error)
	Update(ctx context.Context, id int64, req models.UserRequest) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	ToggleStatus(ctx context.Context, id int64) (*models.User, error)
}

type adminService struct {
	api *client.APIClient
}

func NewAdminService(api *client.APIClient) AdminService {
	return &adminService{api: api}
}

func (s *adminService) Users(ctx context.Context) ([]models.User, error) {
	return client.Get[[]models.User](ctx, s.api, pathUsers)
}

func (s *adminService) User(ctx context.Context, id int64) (*models.User, error) {
	u, err := client.Get[models.User](ctx, s.api, withID(pathUser, id))
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *adminService) UsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %w", validation.ErrInvalid, models.ErrUnknownRole)
	}
	return client.Get[[]models.User](ctx, s.api, withRole(pathUsersByRole, role.String()))
}

func (s *adminService) Create(ctx context.Context, req models.UserRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	u, err := client.Post[models.User](ctx, s.api, pathUsers, req)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *adminService) Update(ctx context.Context, id int64, req models.UserRequest) (*models.User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	u, err := client.Put[models.User](ctx, s.api, withID(pathUser, id), req)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *adminService) Delete(ctx context.Context, id int64) error {
	return client.Delete(ctx, s.api, withID(pathUser, id))
}

// ToggleStatus flips the active flag of user id.
func (s *adminService) ToggleStatus(ctx context.Context, id int64) (*models.User, error) {
	u, err := client.Patch[models.User](ctx, s.api, withID(pathUserToggle, id), struct{}{})
	if err != nil {
		return nil, err
	}
	return &u, nil
}
