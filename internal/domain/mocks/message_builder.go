// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
)

// MockMessageBuilder implements MessageBuilder for testing
type MockMessageBuilder struct {
	mock.Mock
}

func (m *MockMessageBuilder) SendMeetingScheduled(ctx context.Context, msg models.MeetingScheduledMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendMeetingCanceled(ctx context.Context, msg models.MeetingCanceledMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageBuilder) SendMeetingPreempted(ctx context.Context, msg models.MeetingPreemptedMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
