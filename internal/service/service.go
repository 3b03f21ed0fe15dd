// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service contains the scheduling core: priority scoring,
// availability checking, slot placement and the request-facing services.
package service

// ServiceConfig holds tunables shared by the services.
type ServiceConfig struct {
	// AvailabilityWorkers bounds the concurrent busy-time source checks
	// performed by availability probes outside transactions.
	AvailabilityWorkers int
}

// Workers returns the configured worker count with a sane default.
func (c ServiceConfig) Workers() int {
	if c.AvailabilityWorkers <= 0 {
		return 3
	}
	return c.AvailabilityWorkers
}
