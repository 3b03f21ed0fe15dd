// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
)

// MockBlockedTimeRepository implements BlockedTimeRepository for testing
type MockBlockedTimeRepository struct {
	mock.Mock
}

func (m *MockBlockedTimeRepository) Create(ctx context.Context, blocked *models.BlockedTime) error {
	args := m.Called(ctx, blocked)
	return args.Error(0)
}

func (m *MockBlockedTimeRepository) Get(ctx context.Context, id int64) (*models.BlockedTime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlockedTime), args.Error(1)
}

func (m *MockBlockedTimeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlockedTimeRepository) ListByUser(ctx context.Context, userID int64) ([]*models.BlockedTime, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BlockedTime), args.Error(1)
}

func (m *MockBlockedTimeRepository) FindOverlapping(ctx context.Context, userIDs []int64, start, end time.Time) ([]*models.BlockedTime, error) {
	args := m.Called(ctx, userIDs, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BlockedTime), args.Error(1)
}
