// SPDX-License-Identifier: MPL-2.0

// Package environment gives a logging core one contract for "where do logs
// go" and "how does a record reach another process", whatever process it
// runs in.
//
// Select binds a Strategy for the current process role once; the caller
// keeps and passes the returned value. Every Strategy implements the whole
// contract. Operations without a surface in the active role are no-ops:
// registering a listener in a process that has no peer succeeds and the
// listener is simply never called.
//
//	s := environment.Select(environment.WithLogger(logger))
//	dir, err := s.AppLogPath("")
package environment
