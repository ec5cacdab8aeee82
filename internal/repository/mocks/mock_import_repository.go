package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"import-export-hub/internal/models"
)

type MockImportRepository struct {
	mock.Mock
}

func (m *MockImportRepository) Create(ctx context.Context, record *models.ImportRecord) error {
	args := m.Called(ctx, record)
	if record != nil && args.Error(0) == nil {
		record.ID = primitive.NewObjectID()
		record.CreatedAt = time.Now().UTC()
	}
	return args.Error(0)
}

func (m *MockImportRepository) FindByUser(ctx context.Context, userUID string) ([]models.ImportWithProduct, error) {
	args := m.Called(ctx, userUID)
	if rows := args.Get(0); rows != nil {
		return rows.([]models.ImportWithProduct), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockImportRepository) FindByID(ctx context.Context, id string) (*models.ImportRecord, error) {
	args := m.Called(ctx, id)
	if rec := args.Get(0); rec != nil {
		return rec.(*models.ImportRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockImportRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
