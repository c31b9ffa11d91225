// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatTOML outputFormat = "toml"
	formatYAML outputFormat = "yaml"
)

// ErrInvalidOutputFormat is returned for an unknown --format value.
var ErrInvalidOutputFormat = errors.New("invalid output format")

type (
	// outputFormat selects how a command prints structured results.
	outputFormat string

	// field is one line of text output.
	field struct {
		key   string
		value string
	}
)

func (f outputFormat) Validate() error {
	switch f {
	case formatText, formatJSON, formatTOML, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: text, json, toml, yaml)", ErrInvalidOutputFormat, string(f))
	}
}

// writeResult prints v in format. Text output lists fields as "key: value";
// empty values are shown as a placeholder.
func writeResult(w io.Writer, format outputFormat, v any, fields []field) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatTOML:
		data, err := toml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	for _, f := range fields {
		value := SuccessStyle.Render(f.value)
		if f.value == "" {
			value = SubtitleStyle.Render("(none)")
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", KeyStyle.Render(f.key), value); err != nil {
			return err
		}
	}
	return nil
}
