// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// NATS subjects handled and emitted by the scheduling service.
const (
	// MeetingScheduleSubject is the request/reply subject for scheduling a meeting.
	//
	// The message payload is a JSON-encoded [ScheduleMeetingRequest].
	MeetingScheduleSubject = "lfx.schedule-api.meeting_schedule"

	// MeetingCancelSubject is the request/reply subject for cancelling a meeting.
	//
	// The message payload is a JSON-encoded [CancelMeetingRequest].
	MeetingCancelSubject = "lfx.schedule-api.meeting_cancel"

	// MeetingsListSubject is the request/reply subject for listing the
	// caller's team meetings.
	//
	// The message payload is the requesting user ID as a decimal string.
	MeetingsListSubject = "lfx.schedule-api.meetings_list"

	// MeetingScheduledSubject is the event subject emitted after a meeting
	// is placed on the calendar.
	MeetingScheduledSubject = "lfx.scheduling.meeting_scheduled"

	// MeetingCanceledSubject is the event subject emitted after a meeting
	// is cancelled.
	MeetingCanceledSubject = "lfx.scheduling.meeting_canceled"

	// MeetingPreemptedSubject is the event subject emitted for a meeting
	// displaced by a higher-priority one.
	MeetingPreemptedSubject = "lfx.scheduling.meeting_preempted"

	// BlockedTimeAddSubject is the request/reply subject for adding a
	// one-off blocked interval.
	//
	// The message payload is a JSON-encoded [AddBlockedTimeRequest].
	BlockedTimeAddSubject = "lfx.schedule-api.blocked_time_add"

	// BlockedTimeRemoveSubject is the request/reply subject for removing a
	// blocked interval.
	//
	// The message payload is a JSON-encoded [RemoveBlockedTimeRequest].
	BlockedTimeRemoveSubject = "lfx.schedule-api.blocked_time_remove"

	// BlockedTimesListSubject is the request/reply subject for listing a
	// user's blocked intervals.
	//
	// The message payload is the user ID as a decimal string.
	BlockedTimesListSubject = "lfx.schedule-api.blocked_times_list"

	// ScheduleTemplateCreateSubject is the request/reply subject for
	// creating a Monday-to-Friday weekly availability template.
	//
	// The message payload is a JSON-encoded [CreateScheduleTemplateRequest].
	ScheduleTemplateCreateSubject = "lfx.schedule-api.schedule_template_create"

	// ScheduleListSubject is the request/reply subject for listing a user's
	// weekly schedule entries.
	//
	// The message payload is the user ID as a decimal string.
	ScheduleListSubject = "lfx.schedule-api.schedule_list"
)

// SchedulerQueue is the NATS queue group for the scheduling service handlers.
const SchedulerQueue = "lfx.scheduling-service.queue"

// CancelMeetingRequest asks for a meeting to be cancelled by its creator.
type CancelMeetingRequest struct {
	MeetingUID  string `json:"meeting_uid"`
	RequestedBy int64  `json:"requested_by"`
}

// AddBlockedTimeRequest asks for a one-off blocked interval on a user's
// calendar. Title defaults to "Busy" when empty.
type AddBlockedTimeRequest struct {
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// RemoveBlockedTimeRequest asks for a blocked interval to be removed by its
// owner.
type RemoveBlockedTimeRequest struct {
	UserID        int64 `json:"user_id"`
	BlockedTimeID int64 `json:"blocked_time_id"`
}

// CreateScheduleTemplateRequest asks for a Monday-to-Friday weekly template
// with one entry per workday.
type CreateScheduleTemplateRequest struct {
	UserID      int64             `json:"user_id"`
	StartMinute int               `json:"start_minute"`
	EndMinute   int               `json:"end_minute"`
	Type        ScheduleEntryType `json:"type"`
}

// MeetingScheduledMessage is the payload for MeetingScheduledSubject.
type MeetingScheduledMessage struct {
	MeetingUID  string            `json:"meeting_uid"`
	Outcome     SchedulingOutcome `json:"outcome"`
	ScheduledAt *time.Time        `json:"scheduled_at,omitempty"`
	TeamID      int64             `json:"team_id"`
	AttendeeIDs []int64           `json:"attendee_ids"`
}

// MeetingCanceledMessage is the payload for MeetingCanceledSubject.
type MeetingCanceledMessage struct {
	MeetingUID  string  `json:"meeting_uid"`
	TeamID      int64   `json:"team_id"`
	AttendeeIDs []int64 `json:"attendee_ids"`
}

// MeetingPreemptedMessage is the payload for MeetingPreemptedSubject.
type MeetingPreemptedMessage struct {
	MeetingUID     string `json:"meeting_uid"`
	PreemptedByUID string `json:"preempted_by_uid"`
	TeamID         int64  `json:"team_id"`
}
