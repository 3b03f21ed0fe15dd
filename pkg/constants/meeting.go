// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants holds service-wide limits shared between the service
// and store layers.
package constants

// Meeting time constraints
const (
	// MaxMeetingDurationMinutes is the maximum duration of a meeting in minutes.
	// The store layer also uses it as the lookback window when prefiltering
	// meetings that could overlap a slot.
	MaxMeetingDurationMinutes = 600

	// MaxImportance is the top of the 1..10 importance scale.
	MaxImportance = 10
)
