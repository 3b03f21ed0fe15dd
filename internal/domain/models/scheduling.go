// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"sort"
	"time"
)

// ScheduleMeetingRequest is the validated input for a placement attempt.
// The creator is an already-authenticated identity supplied by the caller;
// the core never consults ambient auth state.
type ScheduleMeetingRequest struct {
	Title          string    `json:"title"`
	Duration       int       `json:"duration"`
	Importance     int       `json:"importance"`
	Deadline       time.Time `json:"deadline"`
	PreferredStart time.Time `json:"preferred_start"`
	TeamID         int64     `json:"team_id"`
	CreatedBy      int64     `json:"created_by"`
	AttendeeIDs    []int64   `json:"attendee_ids"`
}

// PreferredEnd returns the exclusive end of the requested slot.
func (r *ScheduleMeetingRequest) PreferredEnd() time.Time {
	return r.PreferredStart.Add(time.Duration(r.Duration) * time.Minute)
}

// AllParticipantIDs returns the attendee IDs with the creator included,
// deduplicated and sorted.
func (r *ScheduleMeetingRequest) AllParticipantIDs() []int64 {
	seen := make(map[int64]bool, len(r.AttendeeIDs)+1)
	ids := make([]int64, 0, len(r.AttendeeIDs)+1)
	for _, id := range append([]int64{r.CreatedBy}, r.AttendeeIDs...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SchedulingOutcome identifies which placement strategy succeeded.
type SchedulingOutcome string

const (
	// OutcomeScheduledPreferred means the preferred slot was free.
	OutcomeScheduledPreferred SchedulingOutcome = "scheduled_preferred"
	// OutcomeScheduledPreempted means a lower-priority meeting was cancelled
	// to free the preferred slot.
	OutcomeScheduledPreempted SchedulingOutcome = "scheduled_preempted"
	// OutcomeScheduledShifted means the forward search found a later slot.
	OutcomeScheduledShifted SchedulingOutcome = "scheduled_shifted"
	// OutcomePending means no slot was found and the meeting awaits manual
	// scheduling. This is a terminal non-error outcome.
	OutcomePending SchedulingOutcome = "pending"
)

// SchedulingResult describes how a meeting ended up on the calendar.
type SchedulingResult struct {
	Outcome       SchedulingOutcome `json:"outcome"`
	Meeting       *Meeting          `json:"meeting"`
	OriginalTime  *time.Time        `json:"original_time,omitempty"`
	ScheduledTime *time.Time        `json:"scheduled_time,omitempty"`
	// PreemptedUID is set when a lower-priority meeting was displaced.
	PreemptedUID string `json:"preempted_uid,omitempty"`
}

// AvailabilityResult is the ephemeral outcome of an availability check.
// It is never persisted.
type AvailabilityResult struct {
	ConflictingUsers []int64 `json:"conflicting_users"`
}

// AllAvailable reports whether no user had a conflict.
func (r *AvailabilityResult) AllAvailable() bool {
	return len(r.ConflictingUsers) == 0
}
