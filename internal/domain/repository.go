// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"
	"time"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
)

// MeetingRepository defines storage operations for meetings and their
// attendee links.
type MeetingRepository interface {
	// Create persists the meeting together with attendee links for the
	// given user IDs. Neither is observable without the other.
	Create(ctx context.Context, meeting *models.Meeting, attendeeIDs []int64) error

	Get(ctx context.Context, uid string) (*models.Meeting, error)
	ListByTeam(ctx context.Context, teamID int64) ([]*models.Meeting, error)

	// FindScheduledOverlapping returns SCHEDULED meetings whose slot
	// overlaps [start, end) and that include at least one of the given
	// users, attendees loaded, ordered by ascending priority score.
	FindScheduledOverlapping(ctx context.Context, userIDs []int64, start, end time.Time) ([]*models.Meeting, error)

	// Cancel soft-deletes a meeting: status CANCELLED, slot cleared.
	Cancel(ctx context.Context, uid string) error
}

// BlockedTimeRepository defines storage operations for one-off busy intervals.
type BlockedTimeRepository interface {
	Create(ctx context.Context, blocked *models.BlockedTime) error
	Get(ctx context.Context, id int64) (*models.BlockedTime, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]*models.BlockedTime, error)

	// FindOverlapping returns blocked intervals for any of the given users
	// overlapping [start, end).
	FindOverlapping(ctx context.Context, userIDs []int64, start, end time.Time) ([]*models.BlockedTime, error)
}

// ScheduleEntryRepository defines storage operations for recurring weekly
// availability templates.
type ScheduleEntryRepository interface {
	CreateBatch(ctx context.Context, entries []*models.ScheduleEntry) error
	ListByUser(ctx context.Context, userID int64) ([]*models.ScheduleEntry, error)

	// ListVisibleForWeekday returns the user's visible entries for one
	// weekday (time.Weekday numbering).
	ListVisibleForWeekday(ctx context.Context, userID int64, weekday int) ([]*models.ScheduleEntry, error)
}

// TeamMemberRepository defines read operations over team memberships.
// Membership rows are maintained by the surrounding product.
type TeamMemberRepository interface {
	// GetMembership returns the membership row for the user on the team,
	// or a not-found error when none exists.
	GetMembership(ctx context.Context, userID, teamID int64) (*models.TeamMember, error)

	// FindAcceptedTeam returns any team the user has ACCEPTED membership
	// on, or a not-found error.
	FindAcceptedTeam(ctx context.Context, userID int64) (*models.TeamMember, error)
}

// Repositories bundles the storage interfaces the scheduling core reads and
// writes. A bundle is either bound to the base connection or, inside
// [TxRunner.InTx], to a single transaction.
type Repositories struct {
	Meetings        MeetingRepository
	BlockedTimes    BlockedTimeRepository
	ScheduleEntries ScheduleEntryRepository
	TeamMembers     TeamMemberRepository
}

// TxRunner executes a function against transaction-bound repositories.
// Implementations must provide serializable (or equivalently isolated)
// semantics: the transaction is the correctness boundary that keeps two
// concurrent placement attempts from double-booking a slot. Returning an
// error from fn rolls the transaction back.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx Repositories) error) error
}
