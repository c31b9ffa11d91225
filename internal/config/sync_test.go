// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// These tests keep the Go struct json tags and the CUE schema field names
// in step. A mismatch silently drops a setting at load time.

// extractCUEFields returns the top-level fields of a CUE definition mapped
// to whether they are optional.
func extractCUEFields(t *testing.T, val cue.Value) map[string]bool {
	t.Helper()

	fields := make(map[string]bool)
	iter, err := val.Fields(cue.Definitions(false), cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to iterate CUE fields: %v", err)
	}
	for iter.Next() {
		sel := iter.Selector()
		if sel.LabelType().IsHidden() || sel.IsDefinition() {
			continue
		}
		fields[strings.TrimSuffix(sel.String(), "?")] = iter.IsOptional()
	}
	return fields
}

// extractGoJSONTags returns the json names of a struct's exported fields
// mapped to whether they carry omitempty.
func extractGoJSONTags(t *testing.T, typ reflect.Type) map[string]bool {
	t.Helper()

	if typ.Kind() != reflect.Struct {
		t.Fatalf("expected struct type, got %s", typ.Kind())
	}

	fields := make(map[string]bool)
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		parts := strings.Split(field.Tag.Get("json"), ",")
		if parts[0] == "" || parts[0] == "-" {
			continue
		}
		fields[parts[0]] = slices.Contains(parts[1:], "omitempty")
	}
	return fields
}

func assertFieldsSync(t *testing.T, def string, typ reflect.Type) {
	t.Helper()

	schema := cuecontext.New().CompileBytes(configSchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile CUE schema: %v", schema.Err())
	}
	val := schema.LookupPath(cue.ParsePath(def))
	if val.Err() != nil {
		t.Fatalf("failed to lookup CUE definition %s: %v", def, val.Err())
	}

	cueFields := extractCUEFields(t, val)
	goFields := extractGoJSONTags(t, typ)

	for field, optional := range cueFields {
		omitempty, ok := goFields[field]
		if !ok {
			t.Errorf("[%s] CUE field %q not found in Go struct", def, field)
			continue
		}
		if optional && !omitempty {
			t.Errorf("[%s] CUE field %q is optional but the Go field lacks omitempty", def, field)
		}
	}
	for field := range goFields {
		if _, ok := cueFields[field]; !ok {
			t.Errorf("[%s] Go json tag %q not found in CUE schema", def, field)
		}
	}
}

func TestConfigSchemaSync(t *testing.T) {
	t.Parallel()
	assertFieldsSync(t, "#Config", reflect.TypeFor[Config]())
}

func TestIPCConfigSchemaSync(t *testing.T) {
	t.Parallel()
	assertFieldsSync(t, "#IPCConfig", reflect.TypeFor[IPCConfig]())
}
