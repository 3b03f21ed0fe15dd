// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
)

// MockScheduleEntryRepository implements ScheduleEntryRepository for testing
type MockScheduleEntryRepository struct {
	mock.Mock
}

func (m *MockScheduleEntryRepository) CreateBatch(ctx context.Context, entries []*models.ScheduleEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockScheduleEntryRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ScheduleEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleEntryRepository) ListVisibleForWeekday(ctx context.Context, userID int64, weekday int) ([]*models.ScheduleEntry, error) {
	args := m.Called(ctx, userID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScheduleEntry), args.Error(1)
}
