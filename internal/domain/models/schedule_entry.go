// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// ScheduleEntryType classifies a recurring schedule entry.
type ScheduleEntryType string

const (
	// ScheduleEntryAvailable marks time the user is generally free.
	ScheduleEntryAvailable ScheduleEntryType = "AVAILABLE"
	// ScheduleEntryPreferred marks time the user prefers for meetings.
	ScheduleEntryPreferred ScheduleEntryType = "PREFERRED"
	// ScheduleEntryBlocked marks recurring time the user is never free.
	ScheduleEntryBlocked ScheduleEntryType = "BLOCKED"
)

// ScheduleEntry is one interval of a user's recurring weekly availability
// template. DayOfWeek follows time.Weekday numbering (0 = Sunday). Start and
// end are minutes since local midnight, end exclusive.
//
// The scheduling core only reads these; they are maintained through the
// schedule service.
type ScheduleEntry struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	UserID      int64             `gorm:"index:idx_user_day" json:"user_id"`
	Title       string            `json:"title"`
	DayOfWeek   int               `gorm:"index:idx_user_day" json:"day_of_week"`
	StartMinute int               `json:"start_minute"`
	EndMinute   int               `json:"end_minute"`
	Type        ScheduleEntryType `gorm:"size:16" json:"type"`
	IsVisible   bool              `gorm:"default:true" json:"is_visible"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Bookable reports whether the entry's type admits meetings.
func (e *ScheduleEntry) Bookable() bool {
	return e.Type == ScheduleEntryAvailable || e.Type == ScheduleEntryPreferred
}

// Contains reports whether [startMinute, endMinute) falls entirely within
// the entry's interval.
func (e *ScheduleEntry) Contains(startMinute, endMinute int) bool {
	return e.StartMinute <= startMinute && e.EndMinute >= endMinute
}
