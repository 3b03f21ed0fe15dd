// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"math"
	"time"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain/models"
	"github.com/linuxfoundation/lfx-v2-scheduling-service/pkg/constants"
)

// Weights of the three normalized sub-scores. Policy constants: compatible
// behavior requires these exact values.
const (
	deadlineWeight   = 0.5
	importanceWeight = 0.2
	durationWeight   = 0.3
)

// Label thresholds on the combined score.
const (
	highPriorityThreshold   = 0.7
	mediumPriorityThreshold = 0.4
)

// PriorityScorer converts a meeting's deadline proximity, stated importance
// and duration into a single comparable score in [0,1] plus a coarse label.
// Scoring is pure and deterministic for a fixed clock.
type PriorityScorer struct {
	// Now is the clock used for deadline proximity. Defaults to time.Now.
	Now func() time.Time
}

// NewPriorityScorer creates a new PriorityScorer using the wall clock.
func NewPriorityScorer() *PriorityScorer {
	return &PriorityScorer{Now: time.Now}
}

// Score computes the weighted priority score, rounded to two decimal places,
// and its label. Importance is clamped to [1,10] and duration to at least one
// minute, so there are no failure modes.
func (s *PriorityScorer) Score(importance int, deadline time.Time, duration int) (float64, models.Priority) {
	if importance < 1 {
		importance = 1
	}
	if importance > constants.MaxImportance {
		importance = constants.MaxImportance
	}
	if duration < 1 {
		duration = 1
	}

	weighted := deadlineWeight*s.deadlineScore(deadline) +
		importanceWeight*importanceScore(importance) +
		durationWeight*durationScore(duration)

	score := math.Round(weighted*100) / 100
	return score, ScoreToPriority(score)
}

// ScoreToPriority maps a score to its coarse label.
func ScoreToPriority(score float64) models.Priority {
	switch {
	case score >= highPriorityThreshold:
		return models.PriorityHigh
	case score >= mediumPriorityThreshold:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// deadlineScore buckets the hours remaining until the deadline. A deadline
// already passed is maximally urgent.
func (s *PriorityScorer) deadlineScore(deadline time.Time) float64 {
	remaining := deadline.Sub(s.Now())
	if remaining <= 0 {
		return 1.0
	}

	hours := remaining.Hours()
	switch {
	case hours <= 2:
		return 1.0
	case hours <= 6:
		return 0.9
	case hours <= 24:
		return 0.7
	case hours <= 72:
		return 0.5
	case hours <= 168:
		return 0.3
	default:
		return 0.1
	}
}

func importanceScore(importance int) float64 {
	return float64(importance) / float64(constants.MaxImportance)
}

// durationScore favors short meetings.
func durationScore(duration int) float64 {
	switch {
	case duration <= 30:
		return 0.9
	case duration <= 60:
		return 0.7
	case duration <= 120:
		return 0.5
	case duration <= 240:
		return 0.3
	default:
		return 0.1
	}
}
