// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hostlog/hostlog/internal/issue"
)

var (
	// ErrConfiguration is wrapped by ConfigurationError.
	ErrConfiguration = errors.New("configuration error")

	// ErrExternalOpen is wrapped by OpenURLError.
	ErrExternalOpen = errors.New("external open failed")
)

// NameResolutionMethods are the ways an application name can be supplied,
// in the order they are tried.
var NameResolutionMethods = []string{
	"set the name explicitly with SetAppName",
	"run inside a host framework that reports the application name",
	`provide a package.json with a "name" field in or above the working directory`,
}

type (
	// ConfigurationError reports that the application name could not be
	// resolved by any of Methods.
	ConfigurationError struct {
		Methods []string
	}

	// OpenURLError is passed to the OpenURL error callback.
	OpenURLError struct {
		URL string
		Err error
	}
)

func newConfigurationError() *ConfigurationError {
	return &ConfigurationError{Methods: append([]string(nil), NameResolutionMethods...)}
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("application name is not set; tried:")
	for i, m := range e.Methods {
		fmt.Fprintf(&b, " (%d) %s", i+1, m)
	}
	return b.String()
}

// Unwrap returns ErrConfiguration.
func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// Actionable converts the error for CLI display.
func (e *ConfigurationError) Actionable() *issue.ActionableError {
	return issue.NewErrorContext().
		WithOperation("resolve application name").
		WithSuggestions(e.Methods...).
		WithIssue(issue.AppNameUnresolvedId).
		Wrap(e).
		Build()
}

func (e *OpenURLError) Error() string {
	return fmt.Sprintf("open %s: %v", e.URL, e.Err)
}

// Unwrap returns both ErrExternalOpen and the underlying failure.
func (e *OpenURLError) Unwrap() []error { return []error{ErrExternalOpen, e.Err} }
