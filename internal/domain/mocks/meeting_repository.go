// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
)

// MockMeetingRepository implements MeetingRepository for testing
type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *models.Meeting, attendeeIDs []int64) error {
	args := m.Called(ctx, meeting, attendeeIDs)
	return args.Error(0)
}

func (m *MockMeetingRepository) Get(ctx context.Context, uid string) (*models.Meeting, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) ListByTeam(ctx context.Context, teamID int64) ([]*models.Meeting, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) FindScheduledOverlapping(ctx context.Context, userIDs []int64, start, end time.Time) ([]*models.Meeting, error) {
	args := m.Called(ctx, userIDs, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) Cancel(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}
