// SPDX-License-Identifier: MPL-2.0

// Package host defines what the environment layer needs from a host
// framework's coordinator process, and provides Coordinator, a reference
// runtime that spawns content processes and bridges them over pkg/ipc.
package host
