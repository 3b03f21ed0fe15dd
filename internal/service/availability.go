// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/logging"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/pkg/concurrent"
)

// AvailabilityService determines whether a set of users is free for a slot
// by consulting three busy-time sources: explicit blocked time, already
// scheduled meetings, and recurring weekly availability templates.
//
// Checks are read-only and idempotent; the service is safe for concurrent
// and repeated use. Bind it to transaction repositories (with a single
// worker) to re-validate a slot inside a placement transaction.
type AvailabilityService struct {
	repos domain.Repositories
	pool  *concurrent.WorkerPool
}

// NewAvailabilityService creates an availability checker over the given
// repository bundle. The pool bounds how many busy-time sources are queried
// concurrently; use a single worker when repos are transaction-bound, since
// a transaction shares one connection.
func NewAvailabilityService(repos domain.Repositories, pool *concurrent.WorkerPool) *AvailabilityService {
	return &AvailabilityService{
		repos: repos,
		pool:  pool,
	}
}

// CheckAvailability returns the set of users with at least one conflict
// against the half-open slot [start, end). An empty set means everyone is
// available.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, userIDs []int64, start, end time.Time) (*models.AvailabilityResult, error) {
	if len(userIDs) == 0 {
		return nil, domain.NewValidationError("at least one user is required for an availability check")
	}
	if !start.Before(end) {
		return nil, domain.NewValidationError("slot start must be before slot end")
	}

	var (
		mu        sync.Mutex
		conflicts = make(map[int64]bool)
	)
	flag := func(ids ...int64) {
		mu.Lock()
		defer mu.Unlock()
		for _, id := range ids {
			conflicts[id] = true
		}
	}

	err := s.pool.Run(ctx,
		func() error { return s.checkBlockedTimes(ctx, userIDs, start, end, flag) },
		func() error { return s.checkScheduledMeetings(ctx, userIDs, start, end, flag) },
		func() error { return s.checkRecurringSchedules(ctx, userIDs, start, end, flag) },
	)
	if err != nil {
		slog.ErrorContext(ctx, "availability check failed", logging.ErrKey, err)
		return nil, domain.NewInternalError("checking availability", err)
	}

	ids := make([]int64, 0, len(conflicts))
	for id := range conflicts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return &models.AvailabilityResult{ConflictingUsers: ids}, nil
}

// checkBlockedTimes flags users with an explicit busy interval overlapping
// the slot.
func (s *AvailabilityService) checkBlockedTimes(ctx context.Context, userIDs []int64, start, end time.Time, flag func(...int64)) error {
	blocked, err := s.repos.BlockedTimes.FindOverlapping(ctx, userIDs, start, end)
	if err != nil {
		return err
	}
	for _, b := range blocked {
		if b.Overlaps(start, end) {
			flag(b.UserID)
		}
	}
	return nil
}

// checkScheduledMeetings flags users already attending a SCHEDULED meeting
// whose slot overlaps the requested one.
func (s *AvailabilityService) checkScheduledMeetings(ctx context.Context, userIDs []int64, start, end time.Time, flag func(...int64)) error {
	requested := make(map[int64]bool, len(userIDs))
	for _, id := range userIDs {
		requested[id] = true
	}

	meetings, err := s.repos.Meetings.FindScheduledOverlapping(ctx, userIDs, start, end)
	if err != nil {
		return err
	}
	for _, m := range meetings {
		if !m.OverlapsSlot(start, end) {
			continue
		}
		for _, attendee := range m.Attendees {
			if requested[attendee.UserID] {
				flag(attendee.UserID)
			}
		}
	}
	return nil
}

// checkRecurringSchedules flags users whose weekly template for the slot's
// weekday exists but has no bookable entry fully containing the slot. Users
// without visible entries for the day are unconstrained.
func (s *AvailabilityService) checkRecurringSchedules(ctx context.Context, userIDs []int64, start, end time.Time, flag func(...int64)) error {
	weekday := int(start.Weekday())
	startMinute := start.Hour()*60 + start.Minute()
	endMinute := startMinute + int(end.Sub(start).Minutes())

	for _, userID := range userIDs {
		entries, err := s.repos.ScheduleEntries.ListVisibleForWeekday(ctx, userID, weekday)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			continue
		}

		fits := false
		for _, entry := range entries {
			if entry.Bookable() && entry.Contains(startMinute, endMinute) {
				fits = true
				break
			}
		}
		if !fits {
			flag(userID)
		}
	}
	return nil
}
