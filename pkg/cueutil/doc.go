// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema.
//
// Parsing follows three steps: compile the schema, compile the user data and
// unify it with the schema definition, then validate and decode into T.
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[map[string]any](schema, data, "#Config",
//	    cueutil.WithFilename(path))
//
// Errors carry the file name and a JSON-style path to the offending field.
package cueutil
