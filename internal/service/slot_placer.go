// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/pkg/concurrent"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/pkg/utils"
)

// Business-hours placement policy.
const (
	businessDayStartMinute = 9 * 60  // 09:00
	businessDayEndMinute   = 17 * 60 // 17:00, exclusive
	lunchStartMinute       = 13 * 60 // 13:00
	lunchEndMinute         = 14 * 60 // 14:00
	slotIncrementMinutes   = 30
	searchBusinessDays     = 5
)

// Sentinels used inside placement transactions to trigger a rollback and
// fall through to the next strategy. Never surfaced to callers. They are
// conflict-typed domain errors so the store's retry loop treats the
// rollback as a business-rule outcome instead of a transient failure.
var (
	errSlotTaken     = domain.NewConflictError("slot is not free for all attendees")
	errNoPreemptable = domain.NewConflictError("no preemptable meeting in the slot")
)

// SlotPlacer places a meeting on the calendar. Strategies run strictly in
// order: the preferred slot, preemption of a single lower-priority meeting,
// a bounded forward search over business hours, and finally a PENDING
// meeting awaiting manual scheduling.
//
// Every committing branch re-checks availability and writes inside one
// serializable transaction, so a slot observed free cannot be taken between
// check and commit.
type SlotPlacer struct {
	Store  domain.TxRunner
	Repos  domain.Repositories
	Config ServiceConfig

	// Now is the clock used to skip past slots. Defaults to time.Now.
	Now func() time.Time
}

// NewSlotPlacer creates a new SlotPlacer over the given store.
func NewSlotPlacer(store domain.TxRunner, repos domain.Repositories, config ServiceConfig) *SlotPlacer {
	return &SlotPlacer{
		Store:  store,
		Repos:  repos,
		Config: config,
		Now:    time.Now,
	}
}

// Place runs the placement strategy chain for an already validated request.
// It returns a result for every non-error outcome, including PENDING.
func (p *SlotPlacer) Place(ctx context.Context, req *models.ScheduleMeetingRequest, score float64, priority models.Priority) (*models.SchedulingResult, error) {
	participants := req.AllParticipantIDs()

	// Strategy 1: the preferred slot as requested.
	meeting, err := p.placeAt(ctx, req, score, priority, req.PreferredStart, participants)
	if err == nil {
		slog.DebugContext(ctx, "meeting scheduled at preferred time", "meeting_uid", meeting.UID)
		return &models.SchedulingResult{
			Outcome:       models.OutcomeScheduledPreferred,
			Meeting:       meeting,
			ScheduledTime: meeting.ScheduledAt,
		}, nil
	}
	if !errors.Is(err, errSlotTaken) {
		return nil, err
	}

	// Strategy 2: displace one strictly lower-priority meeting.
	meeting, preemptedUID, err := p.preemptAndPlace(ctx, req, score, priority, participants)
	if err == nil {
		slog.InfoContext(ctx, "meeting scheduled by preempting a lower-priority meeting",
			"meeting_uid", meeting.UID,
			"preempted_uid", preemptedUID,
		)
		return &models.SchedulingResult{
			Outcome:       models.OutcomeScheduledPreempted,
			Meeting:       meeting,
			ScheduledTime: meeting.ScheduledAt,
			PreemptedUID:  preemptedUID,
		}, nil
	}
	if !errors.Is(err, errNoPreemptable) {
		return nil, err
	}

	// Strategy 3: bounded forward search over business hours.
	meeting, err = p.searchForward(ctx, req, score, priority, participants)
	if err == nil {
		slog.DebugContext(ctx, "meeting scheduled at next free slot",
			"meeting_uid", meeting.UID,
			"scheduled_at", meeting.ScheduledAt,
		)
		return &models.SchedulingResult{
			Outcome:       models.OutcomeScheduledShifted,
			Meeting:       meeting,
			OriginalTime:  utils.TimePtr(req.PreferredStart),
			ScheduledTime: meeting.ScheduledAt,
		}, nil
	}
	if !errors.Is(err, errSlotTaken) {
		return nil, err
	}

	// Strategy 4: no slot anywhere in the window; park the meeting.
	meeting, err = p.createPending(ctx, req, score, priority, participants)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "no free slot found, meeting created as pending", "meeting_uid", meeting.UID)
	return &models.SchedulingResult{
		Outcome:      models.OutcomePending,
		Meeting:      meeting,
		OriginalTime: utils.TimePtr(req.PreferredStart),
	}, nil
}

// placeAt checks availability for [start, start+duration) and creates the
// meeting, all inside one transaction. Returns errSlotTaken when any
// participant has a conflict.
func (p *SlotPlacer) placeAt(ctx context.Context, req *models.ScheduleMeetingRequest, score float64, priority models.Priority, start time.Time, participants []int64) (*models.Meeting, error) {
	end := start.Add(time.Duration(req.Duration) * time.Minute)

	var meeting *models.Meeting
	err := p.Store.InTx(ctx, func(tx domain.Repositories) error {
		// Transaction-bound repositories share one connection, so the
		// oracle must not fan out.
		oracle := NewAvailabilityService(tx, concurrent.NewWorkerPool(1))
		availability, err := oracle.CheckAvailability(ctx, participants, start, end)
		if err != nil {
			return err
		}
		if !availability.AllAvailable() {
			return errSlotTaken
		}

		meeting = p.buildMeeting(req, score, priority, &start)
		return tx.Meetings.Create(ctx, meeting, participants)
	})
	if err != nil {
		if errors.Is(err, errSlotTaken) {
			return nil, errSlotTaken
		}
		slog.ErrorContext(ctx, "error committing placement", logging.ErrKey, err)
		return nil, domain.NewInternalError("placing meeting", err)
	}
	return meeting, nil
}

// preemptAndPlace cancels the lowest-scored SCHEDULED meeting that overlaps
// the preferred slot, shares an attendee, and scores strictly below the new
// meeting, then creates the new meeting in its place. At most one meeting is
// displaced. Returns errNoPreemptable when no candidate qualifies.
func (p *SlotPlacer) preemptAndPlace(ctx context.Context, req *models.ScheduleMeetingRequest, score float64, priority models.Priority, participants []int64) (*models.Meeting, string, error) {
	start := req.PreferredStart
	end := req.PreferredEnd()

	var (
		meeting      *models.Meeting
		preemptedUID string
	)
	err := p.Store.InTx(ctx, func(tx domain.Repositories) error {
		overlapping, err := tx.Meetings.FindScheduledOverlapping(ctx, participants, start, end)
		if err != nil {
			return err
		}

		// Repository order is ascending priority score, so the first
		// qualifying meeting is the cheapest to displace.
		var victim *models.Meeting
		for _, m := range overlapping {
			if m.OverlapsSlot(start, end) && m.PriorityScore < score {
				victim = m
				break
			}
		}
		if victim == nil {
			return errNoPreemptable
		}

		if err := tx.Meetings.Cancel(ctx, victim.UID); err != nil {
			return err
		}
		preemptedUID = victim.UID

		meeting = p.buildMeeting(req, score, priority, &start)
		return tx.Meetings.Create(ctx, meeting, participants)
	})
	if err != nil {
		if errors.Is(err, errNoPreemptable) {
			return nil, "", errNoPreemptable
		}
		slog.ErrorContext(ctx, "error committing preemption", logging.ErrKey, err)
		return nil, "", domain.NewInternalError("preempting meeting", err)
	}
	return meeting, preemptedUID, nil
}

// searchForward scans business-hour slots after the preferred start for up
// to five business days. Probes run read-only outside any transaction; a
// slot that probes free is re-checked and committed atomically by placeAt,
// and the scan continues if it was taken in the meantime. Returns
// errSlotTaken when the window is exhausted.
func (p *SlotPlacer) searchForward(ctx context.Context, req *models.ScheduleMeetingRequest, score float64, priority models.Priority, participants []int64) (*models.Meeting, error) {
	candidates, err := p.candidateSlots(req.PreferredStart, req.Duration)
	if err != nil {
		return nil, domain.NewInternalError("generating candidate slots", err)
	}

	oracle := NewAvailabilityService(p.Repos, concurrent.NewWorkerPool(p.Config.Workers()))
	for _, candidate := range candidates {
		end := candidate.Add(time.Duration(req.Duration) * time.Minute)
		availability, err := oracle.CheckAvailability(ctx, participants, candidate, end)
		if err != nil {
			return nil, err
		}
		if !availability.AllAvailable() {
			continue
		}

		meeting, err := p.placeAt(ctx, req, score, priority, candidate, participants)
		if errors.Is(err, errSlotTaken) {
			// Taken between probe and commit; keep scanning.
			continue
		}
		return meeting, err
	}

	return nil, errSlotTaken
}

// createPending persists the meeting without a slot. A pending meeting is a
// valid terminal outcome, not an error.
func (p *SlotPlacer) createPending(ctx context.Context, req *models.ScheduleMeetingRequest, score float64, priority models.Priority, participants []int64) (*models.Meeting, error) {
	var meeting *models.Meeting
	err := p.Store.InTx(ctx, func(tx domain.Repositories) error {
		meeting = p.buildMeeting(req, score, priority, nil)
		return tx.Meetings.Create(ctx, meeting, participants)
	})
	if err != nil {
		slog.ErrorContext(ctx, "error creating pending meeting", logging.ErrKey, err)
		return nil, domain.NewInternalError("creating pending meeting", err)
	}
	return meeting, nil
}

// candidateSlots enumerates slot starts on the 30-minute grid within
// business hours (09:00-17:00 local, lunch 13:00-14:00 excluded, weekends
// skipped without consuming the day budget) for five business days from the
// preferred start. Slots in the past, before the preferred start, spilling
// past 17:00, or crossing the lunch boundary are dropped.
func (p *SlotPlacer) candidateSlots(preferredStart time.Time, duration int) ([]time.Time, error) {
	days, err := p.businessDays(preferredStart)
	if err != nil {
		return nil, err
	}

	now := p.Now()
	var candidates []time.Time
	for _, day := range days {
		for minute := businessDayStartMinute; minute+duration <= businessDayEndMinute; minute += slotIncrementMinutes {
			endMinute := minute + duration
			if minute >= lunchStartMinute && minute < lunchEndMinute {
				continue
			}
			if minute < lunchStartMinute && endMinute > lunchStartMinute {
				continue
			}

			start := day.Add(time.Duration(minute) * time.Minute)
			if !start.After(now) || start.Before(preferredStart) {
				continue
			}
			candidates = append(candidates, start)
		}
	}
	return candidates, nil
}

// businessDays returns the midnights of the next five weekdays starting at
// the given time's date.
func (p *SlotPlacer) businessDays(from time.Time) ([]time.Time, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		Dtstart:   time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location()),
		Count:     searchBusinessDays,
	})
	if err != nil {
		return nil, err
	}
	return rule.All(), nil
}

func (p *SlotPlacer) buildMeeting(req *models.ScheduleMeetingRequest, score float64, priority models.Priority, scheduledAt *time.Time) *models.Meeting {
	status := models.MeetingStatusPending
	if scheduledAt != nil {
		status = models.MeetingStatusScheduled
	}
	return &models.Meeting{
		UID:           uuid.New().String(),
		Title:         req.Title,
		Duration:      req.Duration,
		PriorityScore: score,
		Priority:      priority,
		Deadline:      req.Deadline,
		TeamID:        req.TeamID,
		CreatedBy:     req.CreatedBy,
		ScheduledAt:   scheduledAt,
		Status:        status,
	}
}
