// SPDX-License-Identifier: MPL-2.0

// Package serverbase holds the lifecycle state machine shared by hostlog's
// long-running components, such as the IPC bridge server.
//
// A Base moves through created, starting, running, stopping and stopped (or
// failed). State reads are lock-free; background goroutines are tracked so
// that Shutdown returns only after they exit.
package serverbase
