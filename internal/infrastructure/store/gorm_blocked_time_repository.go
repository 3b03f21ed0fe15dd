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
)

// GormBlockedTimeRepository implements domain.BlockedTimeRepository on gorm.
type GormBlockedTimeRepository struct {
	db *gorm.DB
}

// NewGormBlockedTimeRepository creates a blocked-time repository bound to db.
func NewGormBlockedTimeRepository(db *gorm.DB) *GormBlockedTimeRepository {
	return &GormBlockedTimeRepository{db: db}
}

// Create persists a blocked interval.
func (r *GormBlockedTimeRepository) Create(ctx context.Context, blocked *models.BlockedTime) error {
	return r.db.WithContext(ctx).Create(blocked).Error
}

// Get returns the blocked interval with the given ID.
func (r *GormBlockedTimeRepository) Get(ctx context.Context, id int64) (*models.BlockedTime, error) {
	var blocked models.BlockedTime
	err := r.db.WithContext(ctx).First(&blocked, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("blocked time not found")
		}
		return nil, err
	}
	return &blocked, nil
}

// Delete removes the blocked interval with the given ID.
func (r *GormBlockedTimeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.BlockedTime{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("blocked time not found")
	}
	return nil
}

// ListByUser returns the user's blocked intervals ordered by start time.
func (r *GormBlockedTimeRepository) ListByUser(ctx context.Context, userID int64) ([]*models.BlockedTime, error) {
	var blocked []*models.BlockedTime
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&blocked).Error
	if err != nil {
		return nil, err
	}
	return blocked, nil
}

// FindOverlapping returns blocked intervals for any of the given users
// overlapping [start, end).
func (r *GormBlockedTimeRepository) FindOverlapping(ctx context.Context, userIDs []int64, start, end time.Time) ([]*models.BlockedTime, error) {
	var blocked []*models.BlockedTime
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("start_time < ?", end).
		Where("end_time > ?", start).
		Find(&blocked).Error
	if err != nil {
		return nil, err
	}
	return blocked, nil
}

var _ domain.BlockedTimeRepository = (*GormBlockedTimeRepository)(nil)
