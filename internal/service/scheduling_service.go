// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/pkg/concurrent"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/pkg/constants"
)

// SchedulingService is the entry point for placing meetings. It validates
// the request against team membership, computes the priority score, and
// delegates placement to the SlotPlacer.
type SchedulingService struct {
	TeamMemberRepository domain.TeamMemberRepository
	MessageBuilder       domain.MessageBuilder
	Scorer               *PriorityScorer
	Placer               *SlotPlacer
	Config               ServiceConfig
}

// NewSchedulingService creates a new SchedulingService.
func NewSchedulingService(
	teamMemberRepository domain.TeamMemberRepository,
	messageBuilder domain.MessageBuilder,
	scorer *PriorityScorer,
	placer *SlotPlacer,
	config ServiceConfig,
) *SchedulingService {
	return &SchedulingService{
		TeamMemberRepository: teamMemberRepository,
		MessageBuilder:       messageBuilder,
		Scorer:               scorer,
		Placer:               placer,
		Config:               config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *SchedulingService) ServiceReady() bool {
	return s.TeamMemberRepository != nil &&
		s.MessageBuilder != nil &&
		s.Scorer != nil &&
		s.Placer != nil
}

// ScheduleMeeting validates the request, scores it, and runs the placement
// chain. Validation failures are detected before any availability data is
// touched.
func (s *SchedulingService) ScheduleMeeting(ctx context.Context, req *models.ScheduleMeetingRequest) (*models.SchedulingResult, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("scheduling service not initialized")
	}

	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	score, priority := s.Scorer.Score(req.Importance, req.Deadline, req.Duration)
	ctx = logging.AppendCtx(ctx, slog.Float64("priority_score", score))

	slog.DebugContext(ctx, "placing meeting",
		"title", req.Title,
		"preferred_start", req.PreferredStart,
		"priority", priority,
	)

	result, err := s.Placer.Place(ctx, req, score, priority)
	if err != nil {
		return nil, err
	}

	s.publishPlacement(ctx, result)

	return result, nil
}

func (s *SchedulingService) validateRequest(ctx context.Context, req *models.ScheduleMeetingRequest) error {
	if req == nil {
		return domain.NewValidationError("request is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return domain.NewValidationError("title is required")
	}
	if req.Duration <= 0 {
		return domain.NewValidationError("duration must be positive")
	}
	if req.Duration > constants.MaxMeetingDurationMinutes {
		return domain.NewValidationError(fmt.Sprintf("duration cannot exceed %d minutes", constants.MaxMeetingDurationMinutes))
	}
	if len(req.AttendeeIDs) == 0 {
		return domain.NewValidationError("at least one attendee is required")
	}
	if req.PreferredStart.IsZero() {
		return domain.NewValidationError("preferred start time is required")
	}
	if req.Deadline.Before(req.PreferredStart) {
		return domain.NewValidationError("deadline cannot be before the preferred start time")
	}

	if err := s.checkMembership(ctx, req.CreatedBy, req.TeamID); err != nil {
		// A store failure is not a membership verdict.
		if domain.GetErrorType(err) == domain.ErrorTypeInternal {
			return err
		}
		slog.WarnContext(ctx, "creator is not an accepted team member", "user_id", req.CreatedBy, "team_id", req.TeamID)
		return domain.NewValidationError("you are not a member of this team", err)
	}

	var invalidIDs []string
	for _, attendeeID := range req.AttendeeIDs {
		if err := s.checkMembership(ctx, attendeeID, req.TeamID); err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeInternal {
				return err
			}
			invalidIDs = append(invalidIDs, fmt.Sprintf("%d", attendeeID))
		}
	}
	if len(invalidIDs) > 0 {
		slog.WarnContext(ctx, "attendees are not team members", "invalid_attendee_ids", strings.Join(invalidIDs, ", "))
		return domain.NewValidationError("some attendees are not team members: " + strings.Join(invalidIDs, ", "))
	}

	return nil
}

// checkMembership confirms the user has ACCEPTED membership on the team.
func (s *SchedulingService) checkMembership(ctx context.Context, userID, teamID int64) error {
	membership, err := s.TeamMemberRepository.GetMembership(ctx, userID, teamID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			return err
		}
		slog.ErrorContext(ctx, "error checking team membership", logging.ErrKey, err, "user_id", userID)
		return domain.NewInternalError("checking team membership", err)
	}
	if !membership.Accepted() {
		return domain.NewNotFoundError("membership not accepted")
	}
	return nil
}

// publishPlacement emits lifecycle events for a committed placement.
// Publication failures are logged for escalation but never unwind the
// already committed meeting.
func (s *SchedulingService) publishPlacement(ctx context.Context, result *models.SchedulingResult) {
	meeting := result.Meeting

	messages := []func() error{
		func() error {
			return s.MessageBuilder.SendMeetingScheduled(ctx, models.MeetingScheduledMessage{
				MeetingUID:  meeting.UID,
				Outcome:     result.Outcome,
				ScheduledAt: meeting.ScheduledAt,
				TeamID:      meeting.TeamID,
				AttendeeIDs: meeting.AttendeeIDs(),
			})
		},
	}
	if result.PreemptedUID != "" {
		messages = append(messages, func() error {
			return s.MessageBuilder.SendMeetingPreempted(ctx, models.MeetingPreemptedMessage{
				MeetingUID:     result.PreemptedUID,
				PreemptedByUID: meeting.UID,
				TeamID:         meeting.TeamID,
			})
		})
	}

	pool := concurrent.NewWorkerPool(len(messages))
	if errs := pool.RunAll(ctx, messages...); len(errs) > 0 {
		slog.ErrorContext(ctx, "failed to send placement messages",
			logging.ErrKey, errors.Join(errs...),
			logging.PriorityCritical(),
		)
	}
}
