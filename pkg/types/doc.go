// SPDX-License-Identifier: MPL-2.0

// Package types holds small validated value types shared across hostlog
// packages. Each type follows the same pattern: a sentinel error, a typed
// error that unwraps to it, and a Validate method.
package types
