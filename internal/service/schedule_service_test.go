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
)

type scheduleServiceFixture struct {
	service *ScheduleService
	blocked *mocks.MockBlockedTimeRepository
	entries *mocks.MockScheduleEntryRepository
}

func newScheduleServiceFixture() *scheduleServiceFixture {
	blocked := new(mocks.MockBlockedTimeRepository)
	entries := new(mocks.MockScheduleEntryRepository)
	return &scheduleServiceFixture{
		service: NewScheduleService(blocked, entries, ServiceConfig{}),
		blocked: blocked,
		entries: entries,
	}
}

func TestScheduleService_AddBlockedTime(t *testing.T) {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("creates a blocked interval", func(t *testing.T) {
		f := newScheduleServiceFixture()
		f.blocked.On("Create", mock.Anything, mock.MatchedBy(func(b *models.BlockedTime) bool {
			return b.UserID == 10 && b.Title == "Dentist" && b.StartTime.Equal(start) && b.EndTime.Equal(end)
		})).Return(nil)

		blocked, err := f.service.AddBlockedTime(context.Background(), 10, "Dentist", start, end)
		require.NoError(t, err)
		assert.Equal(t, "Dentist", blocked.Title)
	})

	t.Run("empty title defaults to Busy", func(t *testing.T) {
		f := newScheduleServiceFixture()
		f.blocked.On("Create", mock.Anything, mock.Anything).Return(nil)

		blocked, err := f.service.AddBlockedTime(context.Background(), 10, "", start, end)
		require.NoError(t, err)
		assert.Equal(t, "Busy", blocked.Title)
	})

	t.Run("rejects missing or inverted intervals", func(t *testing.T) {
		f := newScheduleServiceFixture()

		_, err := f.service.AddBlockedTime(context.Background(), 10, "Busy", time.Time{}, end)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))

		_, err = f.service.AddBlockedTime(context.Background(), 10, "Busy", end, start)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))

		_, err = f.service.AddBlockedTime(context.Background(), 10, "Busy", start, start)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))

		f.blocked.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repository failure surfaces as internal", func(t *testing.T) {
		f := newScheduleServiceFixture()
		f.blocked.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := f.service.AddBlockedTime(context.Background(), 10, "Busy", start, end)
		assert.Equal(t, domain.ErrorTypeInternal, domain.GetErrorType(err))
	})
}

func TestScheduleService_RemoveBlockedTime(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		f := newScheduleServiceFixture()
		f.blocked.On("Get", mock.Anything, int64(7)).Return(&models.BlockedTime{ID: 7, UserID: 10}, nil)
		f.blocked.On("Delete", mock.Anything, int64(7)).Return(nil)

		require.NoError(t, f.service.RemoveBlockedTime(context.Background(), 10, 7))
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		f := newScheduleServiceFixture()
		f.blocked.On("Get", mock.Anything, int64(7)).Return(&models.BlockedTime{ID: 7, UserID: 99}, nil)

		err := f.service.RemoveBlockedTime(context.Background(), 10, 7)
		assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
		f.blocked.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown interval passes through not found", func(t *testing.T) {
		f := newScheduleServiceFixture()
		f.blocked.On("Get", mock.Anything, int64(7)).
			Return(nil, domain.NewNotFoundError("blocked time not found"))

		err := f.service.RemoveBlockedTime(context.Background(), 10, 7)
		assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
	})
}

func TestScheduleService_CreateWeeklyTemplate(t *testing.T) {
	t.Run("creates Monday through Friday entries", func(t *testing.T) {
		f := newScheduleServiceFixture()
		f.entries.On("CreateBatch", mock.Anything, mock.MatchedBy(func(entries []*models.ScheduleEntry) bool {
			return len(entries) == 5
		})).Return(nil)

		entries, err := f.service.CreateWeeklyTemplate(context.Background(), 10, 540, 1020, models.ScheduleEntryAvailable)
		require.NoError(t, err)
		require.Len(t, entries, 5)
		for i, entry := range entries {
			assert.Equal(t, i+1, entry.DayOfWeek)
			assert.Equal(t, int64(10), entry.UserID)
			assert.Equal(t, "Work Hours", entry.Title)
			assert.Equal(t, 540, entry.StartMinute)
			assert.Equal(t, 1020, entry.EndMinute)
			assert.Equal(t, models.ScheduleEntryAvailable, entry.Type)
			assert.True(t, entry.IsVisible)
		}
	})

	t.Run("rejects bad intervals and missing type", func(t *testing.T) {
		tests := []struct {
			name        string
			startMinute int
			endMinute   int
			entryType   models.ScheduleEntryType
		}{
			{"negative start", -1, 600, models.ScheduleEntryAvailable},
			{"end past midnight", 540, 1441, models.ScheduleEntryAvailable},
			{"start at end", 600, 600, models.ScheduleEntryAvailable},
			{"inverted", 700, 600, models.ScheduleEntryAvailable},
			{"missing type", 540, 1020, ""},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				f := newScheduleServiceFixture()
				_, err := f.service.CreateWeeklyTemplate(context.Background(), 10, tc.startMinute, tc.endMinute, tc.entryType)
				assert.Equal(t, domain.ErrorTypeValidation, domain.GetErrorType(err))
				f.entries.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestScheduleService_Listings(t *testing.T) {
	t.Run("blocked times", func(t *testing.T) {
		f := newScheduleServiceFixture()
		f.blocked.On("ListByUser", mock.Anything, int64(10)).
			Return([]*models.BlockedTime{{ID: 1, UserID: 10}}, nil)

		blocked, err := f.service.ListBlockedTimes(context.Background(), 10)
		require.NoError(t, err)
		assert.Len(t, blocked, 1)
	})

	t.Run("schedule entries", func(t *testing.T) {
		f := newScheduleServiceFixture()
		f.entries.On("ListByUser", mock.Anything, int64(10)).
			Return([]*models.ScheduleEntry{{ID: 1, UserID: 10, DayOfWeek: 1}}, nil)

		entries, err := f.service.ListSchedule(context.Background(), 10)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("uninitialized service is unavailable", func(t *testing.T) {
		empty := &ScheduleService{}
		_, err := empty.ListBlockedTimes(context.Background(), 10)
		assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
	})
}
