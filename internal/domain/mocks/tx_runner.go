// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-scheduling-service/internal/domain"
)

// MockTxRunner implements TxRunner for testing. It runs the function
// against the configured repository bundle without any real transaction.
// Set FailWith to make InTx fail before fn runs.
type MockTxRunner struct {
	Repos    domain.Repositories
	FailWith error

	// Calls counts how many transactions were started.
	Calls int
}

func (m *MockTxRunner) InTx(_ context.Context, fn func(tx domain.Repositories) error) error {
	m.Calls++
	if m.FailWith != nil {
		return m.FailWith
	}
	return fn(m.Repos)
}
