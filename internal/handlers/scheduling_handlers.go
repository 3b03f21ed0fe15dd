// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package handlers routes NATS messages to the scheduling services.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/service"
)

// SchedulingHandler handles scheduling-related messages.
type SchedulingHandler struct {
	schedulingService *service.SchedulingService
	meetingService    *service.MeetingService
}

func NewSchedulingHandler(
	schedulingService *service.SchedulingService,
	meetingService *service.MeetingService,
) *SchedulingHandler {
	return &SchedulingHandler{
		schedulingService: schedulingService,
		meetingService:    meetingService,
	}
}

func (h *SchedulingHandler) HandlerReady() bool {
	return h.schedulingService.ServiceReady() &&
		h.meetingService.ServiceReady()
}

// errorResponse is the reply payload for failed request/reply messages.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HandleMessage implements domain.MessageHandler interface
func (h *SchedulingHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling NATS message")

	handlers := map[string]func(ctx context.Context, msg domain.Message) ([]byte, error){
		models.MeetingScheduleSubject: h.HandleMeetingSchedule,
		models.MeetingCancelSubject:   h.HandleMeetingCancel,
		models.MeetingsListSubject:    h.HandleMeetingsList,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown subject")
		if msg.HasReply() {
			if err := msg.Respond(nil); err != nil {
				slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			}
		}
		return
	}

	response, err := handler(ctx, msg)
	if err != nil {
		slog.ErrorContext(ctx, "error handling message", logging.ErrKey, err)
		if msg.HasReply() {
			respondWithError(ctx, msg, err)
		}
		return
	}

	if msg.HasReply() {
		if err := msg.Respond(response); err != nil {
			slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
			return
		}
		slog.DebugContext(ctx, "responded to NATS message")
	} else {
		slog.DebugContext(ctx, "handled NATS message (no reply expected)")
	}
}

func errorCode(err error) string {
	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		return "validation"
	case domain.ErrorTypeNotFound:
		return "not_found"
	case domain.ErrorTypeConflict:
		return "conflict"
	case domain.ErrorTypeUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// respondWithError replies with a JSON error envelope so requesters can tell
// validation failures from transient ones.
func respondWithError(ctx context.Context, msg domain.Message, handlerErr error) {
	payload, err := json.Marshal(errorResponse{
		Error: handlerErr.Error(),
		Code:  errorCode(handlerErr),
	})
	if err != nil {
		payload = nil
	}
	if err := msg.Respond(payload); err != nil {
		slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
	}
}

// HandleMeetingSchedule is the message handler for the meeting-schedule subject.
func (h *SchedulingHandler) HandleMeetingSchedule(ctx context.Context, msg domain.Message) ([]byte, error) {
	if !h.schedulingService.ServiceReady() {
		slog.ErrorContext(ctx, "service not ready")
		return nil, fmt.Errorf("service not ready")
	}

	var req models.ScheduleMeetingRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling schedule request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid schedule request payload", err)
	}

	ctx = logging.AppendCtx(ctx, slog.Int64("team_id", req.TeamID))
	ctx = logging.AppendCtx(ctx, slog.Int64("created_by", req.CreatedBy))

	result, err := h.schedulingService.ScheduleMeeting(ctx, &req)
	if err != nil {
		return nil, err
	}

	return json.Marshal(result)
}

// HandleMeetingCancel is the message handler for the meeting-cancel subject.
func (h *SchedulingHandler) HandleMeetingCancel(ctx context.Context, msg domain.Message) ([]byte, error) {
	if !h.meetingService.ServiceReady() {
		slog.ErrorContext(ctx, "service not ready")
		return nil, fmt.Errorf("service not ready")
	}

	var req models.CancelMeetingRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling cancel request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid cancel request payload", err)
	}
	if req.MeetingUID == "" {
		return nil, domain.NewValidationError("meeting UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", req.MeetingUID))

	meeting, err := h.meetingService.CancelMeeting(ctx, &req)
	if err != nil {
		return nil, err
	}

	return json.Marshal(meeting)
}

// HandleMeetingsList is the message handler for the meetings-list subject.
// The payload is the requesting user ID as a decimal string.
func (h *SchedulingHandler) HandleMeetingsList(ctx context.Context, msg domain.Message) ([]byte, error) {
	if !h.meetingService.ServiceReady() {
		slog.ErrorContext(ctx, "service not ready")
		return nil, fmt.Errorf("service not ready")
	}

	userID, err := strconv.ParseInt(strings.TrimSpace(string(msg.Data())), 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "error parsing user ID", logging.ErrKey, err)
		return nil, domain.NewValidationError("user ID must be a decimal integer", err)
	}

	ctx = logging.AppendCtx(ctx, slog.Int64("user_id", userID))

	meetings, err := h.meetingService.ListTeamMeetings(ctx, userID)
	if err != nil {
		return nil, err
	}

	return json.Marshal(meetings)
}
