package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/validation"
)

// OperationService covers the customer side of operations.
type OperationService interface {
	List(ctx context.Context) ([]models.Operation, error)
	Get(ctx context.Context, id int64) (*models.Operation, error)
	Create(ctx context.Context, req models.OperationRequest) (*models.Operation, error)
	UploadDocument(ctx context.Context, id int64, filename string, content io.Reader) (string, error)
	DownloadDocument(ctx context.Context, documentID int64) ([]byte, error)
}

type operationService struct {
	api *client.APIClient
}

func NewOperationService(api *client.APIClient) OperationService {
	return &operationService{api: api}
}

func (s *operationService) List(ctx context.Context) ([]models.Operation, error) {
	return client.Get[[]models.Operation](ctx, s.api, pathOperations)
}

func (s *operationService) Get(ctx context.Context, id int64) (*models.Operation, error) {
	op, err := client.Get[models.Operation](ctx, s.api, withID(pathOperation, id))
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// Create validates req locally before sending it.
func (s *operationService) Create(ctx context.Context, req models.OperationRequest) (*models.Operation, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	op, err := client.Post[models.Operation](ctx, s.api, pathOperations, req)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// UploadDocument attaches a supporting document to operation id and returns
// the backend's acknowledgement.
func (s *operationService) UploadDocument(ctx context.Context, id int64, filename string, content io.Reader) (string, error) {
	var ack string
	if err := s.api.Upload(ctx, withID(pathOperationUpload, id), "file", filename, content, &ack); err != nil {
		return "", err
	}
	return ack, nil
}

func (s *operationService) DownloadDocument(ctx context.Context, documentID int64) ([]byte, error) {
	return s.api.Download(ctx, withID(pathDocumentDownload, documentID))
}
