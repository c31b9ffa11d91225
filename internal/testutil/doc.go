// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on error.
//
// Process-wide helpers (MustSetenv, MustChdir, SetHomeDir) mutate global
// state and must not be used from parallel tests. Env is the isolated
// alternative for code that accepts a getenv function.
package testutil
