// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
)

// Message represents a domain message interface
type Message interface {
	Subject() string
	Data() []byte
	Respond(data []byte) error
	HasReply() bool
}

// MessageHandler defines how the service handles incoming messages
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message)
	HandlerReady() bool
}

// MessageBuilder publishes meeting lifecycle events. Publication happens
// after the owning transaction commits; failures are logged, never rolled
// into the placement result.
type MessageBuilder interface {
	SendMeetingScheduled(ctx context.Context, msg models.MeetingScheduledMessage) error
	SendMeetingCanceled(ctx context.Context, msg models.MeetingCanceledMessage) error
	SendMeetingPreempted(ctx context.Context, msg models.MeetingPreemptedMessage) error
}
