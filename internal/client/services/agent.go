package services

import (
	"context"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
)

// AgentService covers operation validation by bank agents.
type AgentService interface {
	Pending(ctx context.Context) ([]models.Operation, error)
	Get(ctx context.Context, id int64) (*models.Operation, error)
	Approve(ctx context.Context, id int64, comment string) (*models.Operation, error)
	Reject(ctx context.Context, id int64, comment string) (*models.Operation, error)
	DocumentURL(id int64) string
}

type agentService struct {
	api *client.APIClient
}

func NewAgentService(api *client.APIClient) AgentService {
	return &agentService{api: api}
}

func (s *agentService) Pending(ctx context.Context) ([]models.Operation, error) {
	return client.Get[[]models.Operation](ctx, s.api, pathAgentPending)
}

func (s *agentService) Get(ctx context.Context, id int64) (*models.Operation, error) {
	op, err := client.Get[models.Operation](ctx, s.api, withID(pathAgentOp, id))
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// Approve validates operation id. An empty comment is omitted from the body.
func (s *agentService) Approve(ctx context.Context, id int64, comment string) (*models.Operation, error) {
	return s.decide(ctx, pathAgentApprove, id, comment)
}

// Reject refuses operation id. An empty comment is omitted from the body.
func (s *agentService) Reject(ctx context.Context, id int64, comment string) (*models.Operation, error) {
	return s.decide(ctx, pathAgentReject, id, comment)
}

func (s *agentService) decide(ctx context.Context, pattern string, id int64, comment string) (*models.Operation, error) {
	op, err := client.Put[models.Operation](ctx, s.api, withID(pattern, id), models.ValidationComment{Comment: comment})
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// DocumentURL is the absolute address of the document attached to operation id.
func (s *agentService) DocumentURL(id int64) string {
	return s.api.URL(withID(pathAgentDocument, id))
}
