// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/pkg/constants"
)

// GormMeetingRepository implements domain.MeetingRepository on gorm.
type GormMeetingRepository struct {
	db *gorm.DB
}

// NewGormMeetingRepository creates a meeting repository bound to db, which
// may be the base connection or a transaction.
func NewGormMeetingRepository(db *gorm.DB) *GormMeetingRepository {
	return &GormMeetingRepository{db: db}
}

// Create persists the meeting and its attendee links together. The nested
// transaction degrades to a savepoint when db is already a transaction.
func (r *GormMeetingRepository) Create(ctx context.Context, meeting *models.Meeting, attendeeIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meeting).Error; err != nil {
			return err
		}
		if len(attendeeIDs) == 0 {
			return nil
		}
		links := make([]models.MeetingAttendee, len(attendeeIDs))
		for i, userID := range attendeeIDs {
			links[i] = models.MeetingAttendee{
				MeetingID:  meeting.ID,
				UserID:     userID,
				IsRequired: true,
			}
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
		meeting.Attendees = links
		return nil
	})
}

// Get returns the meeting with the given UID, attendees loaded.
func (r *GormMeetingRepository) Get(ctx context.Context, uid string) (*models.Meeting, error) {
	var meeting models.Meeting
	err := r.db.WithContext(ctx).
		Preload("Attendees").
		First(&meeting, "uid = ?", uid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("meeting not found")
		}
		return nil, err
	}
	return &meeting, nil
}

// ListByTeam returns all meetings for the team, newest first.
func (r *GormMeetingRepository) ListByTeam(ctx context.Context, teamID int64) ([]*models.Meeting, error) {
	var meetings []*models.Meeting
	err := r.db.WithContext(ctx).
		Preload("Attendees").
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// FindScheduledOverlapping returns SCHEDULED meetings involving any of the
// given users whose slot can overlap [start, end), attendees loaded, ordered
// by ascending priority score. scheduled_at is bounded below by the maximum
// meeting duration so the query stays on the scheduled_at index; the exact
// half-open overlap check belongs to the caller.
func (r *GormMeetingRepository) FindScheduledOverlapping(ctx context.Context, userIDs []int64, start, end time.Time) ([]*models.Meeting, error) {
	earliest := start.Add(-time.Duration(constants.MaxMeetingDurationMinutes) * time.Minute)

	var meetings []*models.Meeting
	err := r.db.WithContext(ctx).
		Distinct("meetings.*").
		Joins("JOIN meeting_attendees ON meeting_attendees.meeting_id = meetings.id").
		Where("meeting_attendees.user_id IN ?", userIDs).
		Where("meetings.status = ?", models.MeetingStatusScheduled).
		Where("meetings.scheduled_at < ?", end).
		Where("meetings.scheduled_at > ?", earliest).
		Order("meetings.priority_score ASC").
		Preload("Attendees").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// Cancel marks the meeting CANCELLED and clears its slot.
func (r *GormMeetingRepository) Cancel(ctx context.Context, uid string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("uid = ?", uid).
		Updates(map[string]any{
			"status":       models.MeetingStatusCancelled,
			"scheduled_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("meeting not found")
	}
	return nil
}

var _ domain.MeetingRepository = (*GormMeetingRepository)(nil)
