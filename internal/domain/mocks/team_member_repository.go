// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
)

// MockTeamMemberRepository implements TeamMemberRepository for testing
type MockTeamMemberRepository struct {
	mock.Mock
}

func (m *MockTeamMemberRepository) GetMembership(ctx context.Context, userID, teamID int64) (*models.TeamMember, error) {
	args := m.Called(ctx, userID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) FindAcceptedTeam(ctx context.Context, userID int64) (*models.TeamMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}
