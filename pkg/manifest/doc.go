// SPDX-License-Identifier: MPL-2.0

// Package manifest locates and reads the nearest project manifest
// (package.json) to learn an application's name and version when the
// application did not state them explicitly.
package manifest
