// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// BlockedTime is a one-off busy interval owned by a single user. Only the
// owner may create or delete it.
type BlockedTime struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index" json:"user_id"`
	Title     string    `json:"title"`
	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// Overlaps reports whether the blocked interval overlaps the half-open
// interval [start, end).
func (b *BlockedTime) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}
