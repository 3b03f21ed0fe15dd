// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/pkg/utils"
)

const minutesPerDay = 24 * 60

// workweek is Monday through Friday in time.Weekday numbering.
var workweek = []int{1, 2, 3, 4, 5}

// ScheduleService manages the per-user availability inputs the oracle reads:
// one-off blocked time and recurring weekly templates.
type ScheduleService struct {
	BlockedTimeRepository   domain.BlockedTimeRepository
	ScheduleEntryRepository domain.ScheduleEntryRepository
	Config                  ServiceConfig
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(
	blockedTimeRepository domain.BlockedTimeRepository,
	scheduleEntryRepository domain.ScheduleEntryRepository,
	config ServiceConfig,
) *ScheduleService {
	return &ScheduleService{
		BlockedTimeRepository:   blockedTimeRepository,
		ScheduleEntryRepository: scheduleEntryRepository,
		Config:                  config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *ScheduleService) ServiceReady() bool {
	return s.BlockedTimeRepository != nil && s.ScheduleEntryRepository != nil
}

// AddBlockedTime records a one-off busy interval for the user. An empty
// title defaults to "Busy".
func (s *ScheduleService) AddBlockedTime(ctx context.Context, userID int64, title string, start, end time.Time) (*models.BlockedTime, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("schedule service not initialized")
	}
	if start.IsZero() || end.IsZero() {
		return nil, domain.NewValidationError("start and end times are required")
	}
	if !start.Before(end) {
		return nil, domain.NewValidationError("start time must be before end time")
	}

	blocked := &models.BlockedTime{
		UserID:    userID,
		Title:     utils.CoalesceString(title, "Busy"),
		StartTime: start,
		EndTime:   end,
	}
	if err := s.BlockedTimeRepository.Create(ctx, blocked); err != nil {
		slog.ErrorContext(ctx, "error creating blocked time", logging.ErrKey, err)
		return nil, domain.NewInternalError("creating blocked time", err)
	}

	slog.DebugContext(ctx, "created blocked time", "blocked_time_id", blocked.ID, "user_id", userID)
	return blocked, nil
}

// RemoveBlockedTime deletes a blocked interval. Only the owner may delete it.
func (s *ScheduleService) RemoveBlockedTime(ctx context.Context, userID, blockedTimeID int64) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("schedule service not initialized")
	}

	blocked, err := s.BlockedTimeRepository.Get(ctx, blockedTimeID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			slog.WarnContext(ctx, "blocked time not found", "blocked_time_id", blockedTimeID)
			return err
		}
		slog.ErrorContext(ctx, "error getting blocked time", logging.ErrKey, err)
		return domain.NewInternalError("getting blocked time", err)
	}
	if blocked.UserID != userID {
		slog.WarnContext(ctx, "blocked time owned by another user", "blocked_time_id", blockedTimeID)
		return domain.NewValidationError("you are not authorized to delete this blocked time")
	}

	if err := s.BlockedTimeRepository.Delete(ctx, blockedTimeID); err != nil {
		slog.ErrorContext(ctx, "error deleting blocked time", logging.ErrKey, err)
		return domain.NewInternalError("deleting blocked time", err)
	}

	slog.DebugContext(ctx, "deleted blocked time", "blocked_time_id", blockedTimeID)
	return nil
}

// ListBlockedTimes returns the user's blocked intervals ordered by start.
func (s *ScheduleService) ListBlockedTimes(ctx context.Context, userID int64) ([]*models.BlockedTime, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("schedule service not initialized")
	}

	blocked, err := s.BlockedTimeRepository.ListByUser(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "error listing blocked times", logging.ErrKey, err)
		return nil, domain.NewInternalError("listing blocked times", err)
	}
	return blocked, nil
}

// CreateWeeklyTemplate creates identical visible entries for Monday through
// Friday, the way users describe their working hours once for the whole
// week.
func (s *ScheduleService) CreateWeeklyTemplate(ctx context.Context, userID int64, startMinute, endMinute int, entryType models.ScheduleEntryType) ([]*models.ScheduleEntry, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("schedule service not initialized")
	}
	if entryType == "" {
		return nil, domain.NewValidationError("schedule entry type is required")
	}
	if startMinute < 0 || endMinute > minutesPerDay || startMinute >= endMinute {
		return nil, domain.NewValidationError("schedule entry interval must fall within a single day")
	}

	entries := make([]*models.ScheduleEntry, 0, len(workweek))
	for _, day := range workweek {
		entries = append(entries, &models.ScheduleEntry{
			UserID:      userID,
			Title:       "Work Hours",
			DayOfWeek:   day,
			StartMinute: startMinute,
			EndMinute:   endMinute,
			Type:        entryType,
			IsVisible:   true,
		})
	}

	if err := s.ScheduleEntryRepository.CreateBatch(ctx, entries); err != nil {
		slog.ErrorContext(ctx, "error creating weekly schedule template", logging.ErrKey, err)
		return nil, domain.NewInternalError("creating weekly schedule template", err)
	}

	slog.DebugContext(ctx, "created weekly schedule template", "user_id", userID, "entries", len(entries))
	return entries, nil
}

// ListSchedule returns the user's recurring entries ordered by weekday and
// start time.
func (s *ScheduleService) ListSchedule(ctx context.Context, userID int64) ([]*models.ScheduleEntry, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("schedule service not initialized")
	}

	entries, err := s.ScheduleEntryRepository.ListByUser(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "error listing schedule entries", logging.ErrKey, err)
		return nil, domain.NewInternalError("listing schedule entries", err)
	}
	return entries, nil
}
