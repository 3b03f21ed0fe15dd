// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package store implements the domain repositories on a relational store
// via gorm. The transaction runner is the correctness boundary for
// placement: every read-then-write placement branch commits through it.
package store

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
)

// txRetryCount bounds retries of serialization failures.
const txRetryCount = 3

// GormStore owns the database handle and hands out repository bundles,
// either bound to the base connection or to a transaction.
type GormStore struct {
	db *gorm.DB
}

// New creates a GormStore over an open database handle.
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates or updates the schema for all scheduling models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Meeting{},
		&models.MeetingAttendee{},
		&models.BlockedTime{},
		&models.ScheduleEntry{},
		&models.TeamMember{},
	)
}

// Repositories returns repositories bound to the base connection.
func (s *GormStore) Repositories() domain.Repositories {
	return reposFor(s.db)
}

// InTx runs fn against transaction-bound repositories with serializable
// isolation, retrying a bounded number of times on transient commit
// failures. Errors carrying domain semantics roll back without retry.
func (s *GormStore) InTx(ctx context.Context, fn func(tx domain.Repositories) error) error {
	return WithTxRetry(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

// WithTxRetry runs fn in a serializable transaction, retrying up to
// txRetryCount times. Business-rule rollbacks (domain errors) are not
// retried.
func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for i := 0; i < txRetryCount; i++ {
		err = db.Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err == nil {
			break
		}
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			break
		}
	}
	return err
}

func reposFor(db *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Meetings:        NewGormMeetingRepository(db),
		BlockedTimes:    NewGormBlockedTimeRepository(db),
		ScheduleEntries: NewGormScheduleEntryRepository(db),
		TeamMembers:     NewGormTeamMemberRepository(db),
	}
}

// Compile-time interface check
var _ domain.TxRunner = (*GormStore)(nil)
