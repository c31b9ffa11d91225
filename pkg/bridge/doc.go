// SPDX-License-Identifier: MPL-2.0

// Package bridge carries messages between the coordinator process and
// content processes over named channels.
//
// A Router holds the listeners and invoke handlers registered by the local
// side. A Transport moves messages to the peer and feeds incoming ones into
// a Router. Noop is the transport of processes that have no peer: every
// registration succeeds and nothing is ever delivered.
package bridge
