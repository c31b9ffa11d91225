// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into guidance a user can act on.
//
// ActionableError pairs an error with the operation that failed and
// suggestions for fixing it. The issue catalog holds longer Markdown
// explanations, rendered for the terminal with glamour.
package issue
