// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
)

// GormTeamMemberRepository implements domain.TeamMemberRepository on gorm.
// Membership rows are written by the surrounding product; this repository
// only reads them.
type GormTeamMemberRepository struct {
	db *gorm.DB
}

// NewGormTeamMemberRepository creates a team-member repository bound to db.
func NewGormTeamMemberRepository(db *gorm.DB) *GormTeamMemberRepository {
	return &GormTeamMemberRepository{db: db}
}

// GetMembership returns the membership row for the user on the team.
func (r *GormTeamMemberRepository) GetMembership(ctx context.Context, userID, teamID int64) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND team_id = ?", userID, teamID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user is not a member of this team")
		}
		return nil, err
	}
	return &member, nil
}

// FindAcceptedTeam returns a team the user has ACCEPTED membership on.
func (r *GormTeamMemberRepository) FindAcceptedTeam(ctx context.Context, userID int64) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.MembershipStatusAccepted).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user has no accepted team membership")
		}
		return nil, err
	}
	return &member, nil
}

var _ domain.TeamMemberRepository = (*GormTeamMemberRepository)(nil)
