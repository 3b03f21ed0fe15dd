// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/logging"
)

// MeetingService serves read and cancellation operations on existing
// meetings.
type MeetingService struct {
	Store                domain.TxRunner
	MeetingRepository    domain.MeetingRepository
	TeamMemberRepository domain.TeamMemberRepository
	MessageBuilder       domain.MessageBuilder
	Config               ServiceConfig
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(
	store domain.TxRunner,
	meetingRepository domain.MeetingRepository,
	teamMemberRepository domain.TeamMemberRepository,
	messageBuilder domain.MessageBuilder,
	config ServiceConfig,
) *MeetingService {
	return &MeetingService{
		Store:                store,
		MeetingRepository:    meetingRepository,
		TeamMemberRepository: teamMemberRepository,
		MessageBuilder:       messageBuilder,
		Config:               config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *MeetingService) ServiceReady() bool {
	return s.Store != nil &&
		s.MeetingRepository != nil &&
		s.TeamMemberRepository != nil &&
		s.MessageBuilder != nil
}

// ListTeamMeetings returns all meetings of the team the user has accepted
// membership on, newest first. A user without a team gets an empty list
// rather than an error.
func (s *MeetingService) ListTeamMeetings(ctx context.Context, userID int64) ([]*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service not initialized")
	}

	membership, err := s.TeamMemberRepository.FindAcceptedTeam(ctx, userID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			slog.DebugContext(ctx, "user has no accepted team", "user_id", userID)
			return []*models.Meeting{}, nil
		}
		slog.ErrorContext(ctx, "error finding user team", logging.ErrKey, err)
		return nil, domain.NewInternalError("finding user team", err)
	}

	meetings, err := s.MeetingRepository.ListByTeam(ctx, membership.TeamID)
	if err != nil {
		slog.ErrorContext(ctx, "error listing team meetings", logging.ErrKey, err, "team_id", membership.TeamID)
		return nil, domain.NewInternalError("listing team meetings", err)
	}

	slog.DebugContext(ctx, "returning team meetings", "team_id", membership.TeamID, "count", len(meetings))
	return meetings, nil
}

// CancelMeeting soft-deletes a meeting on behalf of its creator. The status
// moves to CANCELLED and the slot is cleared; attendee links remain.
func (s *MeetingService) CancelMeeting(ctx context.Context, req *models.CancelMeetingRequest) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service not initialized")
	}
	if req == nil || req.MeetingUID == "" {
		return nil, domain.NewValidationError("meeting UID is required")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", req.MeetingUID))

	var cancelled *models.Meeting
	err := s.Store.InTx(ctx, func(tx domain.Repositories) error {
		meeting, err := tx.Meetings.Get(ctx, req.MeetingUID)
		if err != nil {
			return err
		}
		if meeting.CreatedBy != req.RequestedBy {
			// Only the creator may cancel; don't reveal the meeting to others.
			return domain.NewNotFoundError("meeting not found or not created by you")
		}
		if meeting.Status == models.MeetingStatusCancelled {
			return domain.NewConflictError("meeting is already cancelled")
		}

		if err := tx.Meetings.Cancel(ctx, meeting.UID); err != nil {
			return err
		}

		meeting.Status = models.MeetingStatusCancelled
		meeting.ScheduledAt = nil
		cancelled = meeting
		return nil
	})
	if err != nil {
		switch domain.GetErrorType(err) {
		case domain.ErrorTypeNotFound, domain.ErrorTypeConflict, domain.ErrorTypeValidation:
			slog.WarnContext(ctx, "meeting cancellation rejected", logging.ErrKey, err)
			return nil, err
		default:
			slog.ErrorContext(ctx, "error cancelling meeting", logging.ErrKey, err)
			return nil, domain.NewInternalError("cancelling meeting", err)
		}
	}

	if err := s.MessageBuilder.SendMeetingCanceled(ctx, models.MeetingCanceledMessage{
		MeetingUID:  cancelled.UID,
		TeamID:      cancelled.TeamID,
		AttendeeIDs: cancelled.AttendeeIDs(),
	}); err != nil {
		// Cancellation already committed; escalate instead of failing.
		slog.ErrorContext(ctx, "error sending meeting canceled message", logging.ErrKey, err, logging.PriorityCritical())
	}

	slog.DebugContext(ctx, "cancelled meeting")
	return cancelled, nil
}
