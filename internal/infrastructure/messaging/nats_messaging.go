// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package messaging publishes scheduling lifecycle events to NATS.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/logging"
)

// INatsConn is the NATS connection interface needed for the [MessageBuilder].
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder builds lifecycle event messages and sends them to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

func (m *MessageBuilder) sendJSON(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message into JSON", logging.ErrKey, err, "subject", subject)
		return err
	}
	return m.sendMessage(ctx, subject, data)
}

// SendMeetingScheduled sends a message about a meeting being placed on the calendar.
func (m *MessageBuilder) SendMeetingScheduled(ctx context.Context, msg models.MeetingScheduledMessage) error {
	return m.sendJSON(ctx, models.MeetingScheduledSubject, msg)
}

// SendMeetingCanceled sends a message about a meeting being cancelled.
func (m *MessageBuilder) SendMeetingCanceled(ctx context.Context, msg models.MeetingCanceledMessage) error {
	return m.sendJSON(ctx, models.MeetingCanceledSubject, msg)
}

// SendMeetingPreempted sends a message about a meeting displaced by a
// higher-priority one.
func (m *MessageBuilder) SendMeetingPreempted(ctx context.Context, msg models.MeetingPreemptedMessage) error {
	return m.sendJSON(ctx, models.MeetingPreemptedSubject, msg)
}
