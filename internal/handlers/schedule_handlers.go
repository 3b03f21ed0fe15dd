// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

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

// ScheduleHandler handles messages for blocked times and weekly templates.
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

func (h *ScheduleHandler) HandlerReady() bool {
	return h.scheduleService.ServiceReady()
}

// HandleMessage implements domain.MessageHandler interface
func (h *ScheduleHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling NATS message")

	handlers := map[string]func(ctx context.Context, msg domain.Message) ([]byte, error){
		models.BlockedTimeAddSubject:         h.HandleBlockedTimeAdd,
		models.BlockedTimeRemoveSubject:      h.HandleBlockedTimeRemove,
		models.BlockedTimesListSubject:       h.HandleBlockedTimesList,
		models.ScheduleTemplateCreateSubject: h.HandleScheduleTemplateCreate,
		models.ScheduleListSubject:           h.HandleScheduleList,
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

// HandleBlockedTimeAdd is the message handler for the blocked-time-add subject.
func (h *ScheduleHandler) HandleBlockedTimeAdd(ctx context.Context, msg domain.Message) ([]byte, error) {
	if !h.scheduleService.ServiceReady() {
		slog.ErrorContext(ctx, "service not ready")
		return nil, fmt.Errorf("service not ready")
	}

	var req models.AddBlockedTimeRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling blocked time request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid blocked time payload", err)
	}

	ctx = logging.AppendCtx(ctx, slog.Int64("user_id", req.UserID))

	blocked, err := h.scheduleService.AddBlockedTime(ctx, req.UserID, req.Title, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	return json.Marshal(blocked)
}

// HandleBlockedTimeRemove is the message handler for the blocked-time-remove subject.
func (h *ScheduleHandler) HandleBlockedTimeRemove(ctx context.Context, msg domain.Message) ([]byte, error) {
	if !h.scheduleService.ServiceReady() {
		slog.ErrorContext(ctx, "service not ready")
		return nil, fmt.Errorf("service not ready")
	}

	var req models.RemoveBlockedTimeRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling blocked time removal", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid blocked time removal payload", err)
	}

	ctx = logging.AppendCtx(ctx, slog.Int64("user_id", req.UserID))
	ctx = logging.AppendCtx(ctx, slog.Int64("blocked_time_id", req.BlockedTimeID))

	if err := h.scheduleService.RemoveBlockedTime(ctx, req.UserID, req.BlockedTimeID); err != nil {
		return nil, err
	}

	return []byte("success"), nil
}

// HandleBlockedTimesList is the message handler for the blocked-times-list subject.
func (h *ScheduleHandler) HandleBlockedTimesList(ctx context.Context, msg domain.Message) ([]byte, error) {
	if !h.scheduleService.ServiceReady() {
		slog.ErrorContext(ctx, "service not ready")
		return nil, fmt.Errorf("service not ready")
	}

	userID, err := parseUserID(msg.Data())
	if err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.Int64("user_id", userID))

	blocked, err := h.scheduleService.ListBlockedTimes(ctx, userID)
	if err != nil {
		return nil, err
	}

	return json.Marshal(blocked)
}

// HandleScheduleTemplateCreate is the message handler for the
// schedule-template-create subject.
func (h *ScheduleHandler) HandleScheduleTemplateCreate(ctx context.Context, msg domain.Message) ([]byte, error) {
	if !h.scheduleService.ServiceReady() {
		slog.ErrorContext(ctx, "service not ready")
		return nil, fmt.Errorf("service not ready")
	}

	var req models.CreateScheduleTemplateRequest
	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		slog.ErrorContext(ctx, "error unmarshaling template request", logging.ErrKey, err)
		return nil, domain.NewValidationError("invalid schedule template payload", err)
	}

	ctx = logging.AppendCtx(ctx, slog.Int64("user_id", req.UserID))

	entries, err := h.scheduleService.CreateWeeklyTemplate(ctx, req.UserID, req.StartMinute, req.EndMinute, req.Type)
	if err != nil {
		return nil, err
	}

	return json.Marshal(entries)
}

// HandleScheduleList is the message handler for the schedule-list subject.
func (h *ScheduleHandler) HandleScheduleList(ctx context.Context, msg domain.Message) ([]byte, error) {
	if !h.scheduleService.ServiceReady() {
		slog.ErrorContext(ctx, "service not ready")
		return nil, fmt.Errorf("service not ready")
	}

	userID, err := parseUserID(msg.Data())
	if err != nil {
		return nil, err
	}

	ctx = logging.AppendCtx(ctx, slog.Int64("user_id", userID))

	entries, err := h.scheduleService.ListSchedule(ctx, userID)
	if err != nil {
		return nil, err
	}

	return json.Marshal(entries)
}

func parseUserID(data []byte) (int64, error) {
	userID, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("user ID must be a decimal integer", err)
	}
	return userID, nil
}
