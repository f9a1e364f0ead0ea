package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/funzone/internal/models"
)

// MockScoreRepository is a mock implementation of repository.ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Get(ctx context.Context, visitorID, gameID, key string) (*models.ScoreRecord, error) {
	args := m.Called(ctx, visitorID, gameID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScoreRecord), args.Error(1)
}

func (m *MockScoreRepository) Write(ctx context.Context, rec models.ScoreRecord, lowerIsBetter bool) (*models.ScoreRecord, bool, error) {
	args := m.Called(ctx, rec, lowerIsBetter)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.ScoreRecord), args.Bool(1), args.Error(2)
}

func (m *MockScoreRepository) List(ctx context.Context, visitorID string) ([]models.ScoreRecord, error) {
	args := m.Called(ctx, visitorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScoreRecord), args.Error(1)
}
