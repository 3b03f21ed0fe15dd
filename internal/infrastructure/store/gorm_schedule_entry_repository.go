// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
)

// GormScheduleEntryRepository implements domain.ScheduleEntryRepository on gorm.
type GormScheduleEntryRepository struct {
	db *gorm.DB
}

// NewGormScheduleEntryRepository creates a schedule-entry repository bound to db.
func NewGormScheduleEntryRepository(db *gorm.DB) *GormScheduleEntryRepository {
	return &GormScheduleEntryRepository{db: db}
}

// CreateBatch persists a batch of weekly entries in one statement.
func (r *GormScheduleEntryRepository) CreateBatch(ctx context.Context, entries []*models.ScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

// ListByUser returns the user's entries ordered by weekday and start minute.
func (r *GormScheduleEntryRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ScheduleEntry, error) {
	var entries []*models.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC, start_minute ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListVisibleForWeekday returns the user's visible entries for one weekday.
func (r *GormScheduleEntryRepository) ListVisibleForWeekday(ctx context.Context, userID int64, weekday int) ([]*models.ScheduleEntry, error) {
	var entries []*models.ScheduleEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("day_of_week = ?", weekday).
		Where("is_visible = ?", true).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

var _ domain.ScheduleEntryRepository = (*GormScheduleEntryRepository)(nil)
