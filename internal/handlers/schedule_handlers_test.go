// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/mocks"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/service"
)

type scheduleFixture struct {
	handler *ScheduleHandler
	blocked *mocks.MockBlockedTimeRepository
	entries *mocks.MockScheduleEntryRepository
}

func newScheduleFixture() *scheduleFixture {
	blocked := new(mocks.MockBlockedTimeRepository)
	entries := new(mocks.MockScheduleEntryRepository)
	svc := service.NewScheduleService(blocked, entries, service.ServiceConfig{})
	return &scheduleFixture{
		handler: NewScheduleHandler(svc),
		blocked: blocked,
		entries: entries,
	}
}

func TestScheduleHandler_HandleBlockedTimeAdd(t *testing.T) {
	f := newScheduleFixture()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	f.blocked.On("Create", mock.Anything, mock.Anything).Return(nil)

	payload, err := json.Marshal(models.AddBlockedTimeRequest{
		UserID:    10,
		StartTime: day.Add(14 * time.Hour),
		EndTime:   day.Add(15 * time.Hour),
	})
	require.NoError(t, err)

	msg := mocks.NewMockMessage(payload, models.BlockedTimeAddSubject)
	msg.On("HasReply").Return(true)
	msg.On("Respond", mock.Anything).Return(nil)

	f.handler.HandleMessage(context.Background(), msg)

	var blocked models.BlockedTime
	require.NoError(t, json.Unmarshal(respondedPayload(t, msg), &blocked))
	// empty title defaults
	assert.Equal(t, "Busy", blocked.Title)
	assert.Equal(t, int64(10), blocked.UserID)

	msg.AssertExpectations(t)
	f.blocked.AssertExpectations(t)
}

func TestScheduleHandler_HandleBlockedTimeRemove_NotOwner(t *testing.T) {
	f := newScheduleFixture()

	f.blocked.On("Get", mock.Anything, int64(5)).Return(&models.BlockedTime{ID: 5, UserID: 10}, nil)

	payload, err := json.Marshal(models.RemoveBlockedTimeRequest{UserID: 99, BlockedTimeID: 5})
	require.NoError(t, err)

	msg := mocks.NewMockMessage(payload, models.BlockedTimeRemoveSubject)
	msg.On("HasReply").Return(true)
	msg.On("Respond", mock.Anything).Return(nil)

	f.handler.HandleMessage(context.Background(), msg)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(respondedPayload(t, msg), &resp))
	assert.Equal(t, "validation", resp.Code)
	msg.AssertExpectations(t)
}

func TestScheduleHandler_HandleScheduleTemplateCreate(t *testing.T) {
	f := newScheduleFixture()

	f.entries.On("CreateBatch", mock.Anything, mock.MatchedBy(func(entries []*models.ScheduleEntry) bool {
		return len(entries) == 5
	})).Return(nil)

	payload, err := json.Marshal(models.CreateScheduleTemplateRequest{
		UserID:      10,
		StartMinute: 540,
		EndMinute:   1020,
		Type:        models.ScheduleEntryAvailable,
	})
	require.NoError(t, err)

	msg := mocks.NewMockMessage(payload, models.ScheduleTemplateCreateSubject)
	msg.On("HasReply").Return(true)
	msg.On("Respond", mock.Anything).Return(nil)

	f.handler.HandleMessage(context.Background(), msg)

	var entries []*models.ScheduleEntry
	require.NoError(t, json.Unmarshal(respondedPayload(t, msg), &entries))
	require.Len(t, entries, 5)
	// Monday through Friday, one entry per workday
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.DayOfWeek)
		assert.Equal(t, "Work Hours", entry.Title)
		assert.True(t, entry.IsVisible)
	}

	msg.AssertExpectations(t)
	f.entries.AssertExpectations(t)
}

func TestScheduleHandler_HandleScheduleList_InvalidUser(t *testing.T) {
	f := newScheduleFixture()

	msg := mocks.NewMockMessage([]byte("nope"), models.ScheduleListSubject)
	msg.On("HasReply").Return(true)
	msg.On("Respond", mock.Anything).Return(nil)

	f.handler.HandleMessage(context.Background(), msg)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(respondedPayload(t, msg), &resp))
	assert.Equal(t, "validation", resp.Code)
	msg.AssertExpectations(t)
}

func TestScheduleHandler_HandleBlockedTimesList(t *testing.T) {
	f := newScheduleFixture()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	f.blocked.On("ListByUser", mock.Anything, int64(10)).Return([]*models.BlockedTime{
		{ID: 1, UserID: 10, Title: "Focus", StartTime: day.Add(9 * time.Hour), EndTime: day.Add(10 * time.Hour)},
	}, nil)

	msg := mocks.NewMockMessage([]byte("10"), models.BlockedTimesListSubject)
	msg.On("HasReply").Return(true)
	msg.On("Respond", mock.Anything).Return(nil)

	f.handler.HandleMessage(context.Background(), msg)

	var blocked []*models.BlockedTime
	require.NoError(t, json.Unmarshal(respondedPayload(t, msg), &blocked))
	require.Len(t, blocked, 1)
	assert.Equal(t, "Focus", blocked[0].Title)
	msg.AssertExpectations(t)
}

var _ domain.MessageHandler = (*ScheduleHandler)(nil)
