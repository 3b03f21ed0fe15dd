// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/mocks"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/pkg/utils"
)

// scriptedTxRunner delegates to a repository bundle but can fail chosen
// transaction attempts, simulating commit-time rejections.
type scriptedTxRunner struct {
	repos  domain.Repositories
	calls  int
	failOn map[int]error
}

func (r *scriptedTxRunner) InTx(_ context.Context, fn func(tx domain.Repositories) error) error {
	r.calls++
	if err, ok := r.failOn[r.calls]; ok {
		return err
	}
	return fn(r.repos)
}

type placerFixture struct {
	placer   *SlotPlacer
	store    *scriptedTxRunner
	meetings *mocks.MockMeetingRepository
	blocked  *mocks.MockBlockedTimeRepository
	entries  *mocks.MockScheduleEntryRepository
}

// newPlacerFixture builds a placer over mocked repositories with a fixed
// clock of Monday 2026-03-02 08:00 UTC.
func newPlacerFixture() *placerFixture {
	meetings := new(mocks.MockMeetingRepository)
	blocked := new(mocks.MockBlockedTimeRepository)
	entries := new(mocks.MockScheduleEntryRepository)
	repos := domain.Repositories{
		Meetings:        meetings,
		BlockedTimes:    blocked,
		ScheduleEntries: entries,
		TeamMembers:     new(mocks.MockTeamMemberRepository),
	}
	store := &scriptedTxRunner{repos: repos}
	placer := NewSlotPlacer(store, repos, ServiceConfig{})
	placer.Now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
	return &placerFixture{
		placer:   placer,
		store:    store,
		meetings: meetings,
		blocked:  blocked,
		entries:  entries,
	}
}

func (f *placerFixture) stubNoMeetings() {
	f.meetings.On("FindScheduledOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Meeting{}, nil)
}

func (f *placerFixture) stubNoBlockedTimes() {
	f.blocked.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.BlockedTime{}, nil)
}

func (f *placerFixture) stubNoTemplates() {
	f.entries.On("ListVisibleForWeekday", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.ScheduleEntry{}, nil)
}

func placementRequest(preferred time.Time) *models.ScheduleMeetingRequest {
	return &models.ScheduleMeetingRequest{
		Title:          "Architecture Sync",
		Duration:       30,
		Importance:     8,
		Deadline:       preferred.Add(48 * time.Hour),
		PreferredStart: preferred,
		TeamID:         1,
		CreatedBy:      10,
		AttendeeIDs:    []int64{11},
	}
}

func TestSlotPlacer_Place_PreferredSlotFree(t *testing.T) {
	f := newPlacerFixture()
	preferred := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	req := placementRequest(preferred)

	f.stubNoBlockedTimes()
	f.stubNoMeetings()
	f.stubNoTemplates()
	f.meetings.On("Create", mock.Anything, mock.Anything, []int64{10, 11}).Return(nil)

	result, err := f.placer.Place(context.Background(), req, 0.8, models.PriorityHigh)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeScheduledPreferred, result.Outcome)
	require.NotNil(t, result.Meeting)
	assert.Equal(t, models.MeetingStatusScheduled, result.Meeting.Status)
	assert.Equal(t, preferred, *result.Meeting.ScheduledAt)
	assert.Equal(t, 0.8, result.Meeting.PriorityScore)
	assert.NotEmpty(t, result.Meeting.UID)
	assert.Nil(t, result.OriginalTime)
	assert.Equal(t, 1, f.store.calls)
	f.meetings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestSlotPlacer_Place_PreemptsLowerPriority(t *testing.T) {
	f := newPlacerFixture()
	preferred := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	req := placementRequest(preferred)

	// Two meetings occupy the slot; ascending score order, the first
	// qualifying one is displaced.
	cheap := &models.Meeting{
		UID: "uid-cheap", Duration: 30, PriorityScore: 0.3, Status: models.MeetingStatusScheduled,
		ScheduledAt: utils.TimePtr(preferred),
		Attendees:   []models.MeetingAttendee{{UserID: 11}},
	}
	mid := &models.Meeting{
		UID: "uid-mid", Duration: 30, PriorityScore: 0.6, Status: models.MeetingStatusScheduled,
		ScheduledAt: utils.TimePtr(preferred),
		Attendees:   []models.MeetingAttendee{{UserID: 10}},
	}

	f.stubNoBlockedTimes()
	f.stubNoTemplates()
	f.meetings.On("FindScheduledOverlapping", mock.Anything, []int64{10, 11}, preferred, preferred.Add(30*time.Minute)).
		Return([]*models.Meeting{cheap, mid}, nil)
	f.meetings.On("Cancel", mock.Anything, "uid-cheap").Return(nil)
	f.meetings.On("Create", mock.Anything, mock.Anything, []int64{10, 11}).Return(nil)

	result, err := f.placer.Place(context.Background(), req, 0.8, models.PriorityHigh)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeScheduledPreempted, result.Outcome)
	assert.Equal(t, "uid-cheap", result.PreemptedUID)
	assert.Equal(t, preferred, *result.Meeting.ScheduledAt)
	f.meetings.AssertCalled(t, "Cancel", mock.Anything, "uid-cheap")
	f.meetings.AssertNotCalled(t, "Cancel", mock.Anything, "uid-mid")
}

func TestSlotPlacer_Place_EqualScoreIsNotPreempted(t *testing.T) {
	f := newPlacerFixture()
	preferred := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	req := placementRequest(preferred)

	// Clock past the whole search window, so the forward search has no
	// candidates and placement parks the meeting.
	f.placer.Now = func() time.Time { return time.Date(2026, 3, 16, 8, 0, 0, 0, time.UTC) }

	occupant := &models.Meeting{
		UID: "uid-equal", Duration: 30, PriorityScore: 0.8, Status: models.MeetingStatusScheduled,
		ScheduledAt: utils.TimePtr(preferred),
		Attendees:   []models.MeetingAttendee{{UserID: 11}},
	}

	f.stubNoBlockedTimes()
	f.stubNoTemplates()
	f.meetings.On("FindScheduledOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.Meeting{occupant}, nil)
	f.meetings.On("Create", mock.Anything, mock.Anything, []int64{10, 11}).Return(nil)

	result, err := f.placer.Place(context.Background(), req, 0.8, models.PriorityHigh)
	require.NoError(t, err)

	// spared: equal score does not qualify for preemption
	f.meetings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	assert.Equal(t, models.OutcomePending, result.Outcome)
	assert.Equal(t, models.MeetingStatusPending, result.Meeting.Status)
	assert.Nil(t, result.Meeting.ScheduledAt)
	assert.Equal(t, preferred, *result.OriginalTime)
}

func TestSlotPlacer_Place_ShiftsToNextFreeSlot(t *testing.T) {
	f := newPlacerFixture()
	preferred := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	req := placementRequest(preferred)

	// Attendee 11 is blocked 10:00-11:00; the first free grid slot is 11:00.
	f.blocked.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.BlockedTime{
			{UserID: 11, StartTime: preferred, EndTime: preferred.Add(time.Hour)},
		}, nil)
	f.stubNoMeetings()
	f.stubNoTemplates()
	f.meetings.On("Create", mock.Anything, mock.Anything, []int64{10, 11}).Return(nil)

	result, err := f.placer.Place(context.Background(), req, 0.8, models.PriorityHigh)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeScheduledShifted, result.Outcome)
	assert.Equal(t, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC), *result.Meeting.ScheduledAt)
	assert.Equal(t, preferred, *result.OriginalTime)
	assert.Equal(t, models.MeetingStatusScheduled, result.Meeting.Status)
}

func TestSlotPlacer_Place_ExhaustedWindowCreatesPending(t *testing.T) {
	f := newPlacerFixture()
	preferred := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	req := placementRequest(preferred)

	// Blocked for the whole search horizon.
	f.blocked.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.BlockedTime{
			{UserID: 11, StartTime: preferred.Add(-14 * 24 * time.Hour), EndTime: preferred.Add(14 * 24 * time.Hour)},
		}, nil)
	f.stubNoMeetings()
	f.stubNoTemplates()
	f.meetings.On("Create", mock.Anything, mock.Anything, []int64{10, 11}).Return(nil)

	result, err := f.placer.Place(context.Background(), req, 0.8, models.PriorityHigh)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomePending, result.Outcome)
	assert.Equal(t, models.MeetingStatusPending, result.Meeting.Status)
	assert.Nil(t, result.Meeting.ScheduledAt)
	assert.Nil(t, result.ScheduledTime)
	assert.Equal(t, preferred, *result.OriginalTime)
	f.meetings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestSlotPlacer_Place_RecheckFailureContinuesScan(t *testing.T) {
	f := newPlacerFixture()
	preferred := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	req := placementRequest(preferred)

	// Preferred slot busy; 11:00 probes free but its commit is rejected as
	// if a concurrent placement won the slot. The scan must move on.
	f.blocked.On("FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.BlockedTime{
			{UserID: 11, StartTime: preferred, EndTime: preferred.Add(time.Hour)},
		}, nil)
	f.stubNoMeetings()
	f.stubNoTemplates()
	f.meetings.On("Create", mock.Anything, mock.Anything, []int64{10, 11}).Return(nil)

	// call 1: preferred placeAt, call 2: preemption, call 3: 11:00 commit
	f.store.failOn = map[int]error{3: errSlotTaken}

	result, err := f.placer.Place(context.Background(), req, 0.8, models.PriorityHigh)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeScheduledShifted, result.Outcome)
	assert.Equal(t, time.Date(2026, 3, 2, 11, 30, 0, 0, time.UTC), *result.Meeting.ScheduledAt)
	assert.Equal(t, 4, f.store.calls)
}

func TestSlotPlacer_RollbackSentinelsAreConflicts(t *testing.T) {
	// The store's retry loop re-runs transient transaction failures but not
	// domain errors; a busy slot or missing victim must roll back exactly
	// once, so the sentinels have to carry domain semantics.
	assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(errSlotTaken))
	assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(errNoPreemptable))
}

func TestSlotPlacer_CandidateSlots(t *testing.T) {
	f := newPlacerFixture()

	t.Run("grid respects lunch and closing time", func(t *testing.T) {
		preferred := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // Monday 09:00
		candidates, err := f.placer.candidateSlots(preferred, 60)
		require.NoError(t, err)

		// 09:00-12:00 and 14:00-16:00 on the 30-minute grid, five days
		assert.Len(t, candidates, 60)

		for _, c := range candidates {
			minute := c.Hour()*60 + c.Minute()
			assert.GreaterOrEqual(t, minute, businessDayStartMinute)
			assert.LessOrEqual(t, minute+60, businessDayEndMinute)
			// never within or crossing into lunch
			assert.False(t, minute >= lunchStartMinute && minute < lunchEndMinute, "slot at %v is during lunch", c)
			assert.False(t, minute < lunchStartMinute && minute+60 > lunchStartMinute, "slot at %v crosses into lunch", c)
			assert.True(t, c.Minute() == 0 || c.Minute() == 30, "slot at %v off the grid", c)
		}
	})

	t.Run("weekends are skipped without consuming the day budget", func(t *testing.T) {
		friday := time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)
		f.placer.Now = func() time.Time { return friday.Add(-time.Hour) }

		candidates, err := f.placer.candidateSlots(friday, 30)
		require.NoError(t, err)
		require.NotEmpty(t, candidates)

		days := map[string]bool{}
		for _, c := range candidates {
			assert.NotEqual(t, time.Saturday, c.Weekday())
			assert.NotEqual(t, time.Sunday, c.Weekday())
			days[c.Format("2006-01-02")] = true
		}
		// Friday plus the following Monday through Thursday
		assert.Len(t, days, 5)
		assert.True(t, days["2026-03-06"])
		assert.True(t, days["2026-03-12"])
	})

	t.Run("slots before the preferred start are dropped", func(t *testing.T) {
		preferred := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
		f.placer.Now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }

		candidates, err := f.placer.candidateSlots(preferred, 30)
		require.NoError(t, err)
		require.NotEmpty(t, candidates)
		for _, c := range candidates {
			assert.False(t, c.Before(preferred), "slot at %v precedes the preferred start", c)
		}
	})

	t.Run("oversized duration yields no candidates", func(t *testing.T) {
		preferred := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		candidates, err := f.placer.candidateSlots(preferred, 600)
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})
}
