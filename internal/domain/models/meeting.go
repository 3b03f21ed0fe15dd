// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// MeetingStatus is the lifecycle status of a meeting.
type MeetingStatus string

const (
	// MeetingStatusScheduled means the meeting has a confirmed slot on the calendar.
	MeetingStatusScheduled MeetingStatus = "SCHEDULED"
	// MeetingStatusPending means automatic placement was exhausted and the
	// meeting awaits manual scheduling.
	MeetingStatusPending MeetingStatus = "PENDING"
	// MeetingStatusCancelled means the meeting was cancelled. Cancelled
	// meetings keep their attendee links but lose their slot.
	MeetingStatusCancelled MeetingStatus = "CANCELLED"
	// MeetingStatusCompleted means the meeting already took place.
	MeetingStatusCompleted MeetingStatus = "COMPLETED"
)

// Priority is the coarse priority label derived from the priority score.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Meeting is the relational store representation of a meeting.
//
// Invariant: ScheduledAt is non-nil if and only if Status is SCHEDULED.
type Meeting struct {
	ID            int64             `gorm:"primaryKey" json:"id"`
	UID           string            `gorm:"uniqueIndex;size:36" json:"uid"`
	Title         string            `json:"title"`
	Duration      int               `json:"duration"`
	PriorityScore float64           `json:"priority_score"`
	Priority      Priority          `gorm:"size:16" json:"priority"`
	Deadline      time.Time         `json:"deadline"`
	TeamID        int64             `gorm:"index" json:"team_id"`
	CreatedBy     int64             `json:"created_by"`
	ScheduledAt   *time.Time        `gorm:"index" json:"scheduled_at,omitempty"`
	Status        MeetingStatus     `gorm:"size:16;index" json:"status"`
	Attendees     []MeetingAttendee `gorm:"foreignKey:MeetingID" json:"attendees,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// EndTime returns the exclusive end of the meeting's slot, or the zero time
// for meetings without a slot.
func (m *Meeting) EndTime() time.Time {
	if m.ScheduledAt == nil {
		return time.Time{}
	}
	return m.ScheduledAt.Add(time.Duration(m.Duration) * time.Minute)
}

// OverlapsSlot reports whether the meeting's slot overlaps the half-open
// interval [start, end). Meetings without a slot never overlap.
func (m *Meeting) OverlapsSlot(start, end time.Time) bool {
	if m.ScheduledAt == nil {
		return false
	}
	return m.ScheduledAt.Before(end) && m.EndTime().After(start)
}

// AttendeeIDs returns the user IDs of the meeting's attendee links.
func (m *Meeting) AttendeeIDs() []int64 {
	ids := make([]int64, len(m.Attendees))
	for i, a := range m.Attendees {
		ids[i] = a.UserID
	}
	return ids
}

// MeetingAttendee links a user to a meeting. Links are created atomically
// with the meeting and are immutable afterwards; cancellation does not
// remove them.
type MeetingAttendee struct {
	ID         int64 `gorm:"primaryKey" json:"id"`
	MeetingID  int64 `gorm:"index:idx_meeting_user,unique" json:"meeting_id"`
	UserID     int64 `gorm:"index:idx_meeting_user,unique;index" json:"user_id"`
	IsRequired bool  `json:"is_required"`
}
