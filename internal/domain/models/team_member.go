// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// MembershipStatus is the state of a user's membership on a team.
type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "PENDING"
	MembershipStatusAccepted MembershipStatus = "ACCEPTED"
	MembershipStatusDeclined MembershipStatus = "DECLINED"
)

// TeamMember records a user's membership on a team. Membership management
// (invitations, acceptance) happens outside this service; the scheduling
// core only checks for ACCEPTED rows.
type TeamMember struct {
	ID        int64            `gorm:"primaryKey" json:"id"`
	UserID    int64            `gorm:"index:idx_user_team,unique" json:"user_id"`
	TeamID    int64            `gorm:"index:idx_user_team,unique" json:"team_id"`
	Status    MembershipStatus `gorm:"size:16" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// Accepted reports whether the membership is active.
func (m *TeamMember) Accepted() bool {
	return m.Status == MembershipStatusAccepted
}
