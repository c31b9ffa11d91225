// SPDX-License-Identifier: MPL-2.0

package paths

import (
	"encoding/json"
	"strings"
)

// Variables is a snapshot of every derived path for one application,
// assembled in a single call. It is recomputed per query; nothing in it is
// cached across calls.
type Variables struct {
	AppData    string `json:"appData" toml:"appData" yaml:"appData"`
	AppName    string `json:"appName" toml:"appName" yaml:"appName"`
	AppVersion string `json:"appVersion,omitempty" toml:"appVersion,omitempty" yaml:"appVersion,omitempty"`
	Home       string `json:"home" toml:"home" yaml:"home"`
	// LibraryDefaultDir is the log directory for AppName.
	LibraryDefaultDir string `json:"libraryDefaultDir" toml:"libraryDefaultDir" yaml:"libraryDefaultDir"`
	// LibraryTemplate is LibraryDefaultDir computed with AppNameToken in
	// place of the name.
	LibraryTemplate string `json:"libraryTemplate" toml:"libraryTemplate" yaml:"libraryTemplate"`
	Temp            string `json:"temp" toml:"temp" yaml:"temp"`
	UserData        string `json:"userData,omitempty" toml:"userData,omitempty" yaml:"userData,omitempty"`

	hostDefaultDir func() string
}

// Snapshot is the serializable form of Variables with the host default
// directory evaluated.
type Snapshot struct {
	AppData           string `json:"appData" toml:"appData" yaml:"appData"`
	AppName           string `json:"appName" toml:"appName" yaml:"appName"`
	AppVersion        string `json:"appVersion,omitempty" toml:"appVersion,omitempty" yaml:"appVersion,omitempty"`
	HostDefaultDir    string `json:"hostDefaultDir" toml:"hostDefaultDir" yaml:"hostDefaultDir"`
	Home              string `json:"home" toml:"home" yaml:"home"`
	LibraryDefaultDir string `json:"libraryDefaultDir" toml:"libraryDefaultDir" yaml:"libraryDefaultDir"`
	LibraryTemplate   string `json:"libraryTemplate" toml:"libraryTemplate" yaml:"libraryTemplate"`
	Temp              string `json:"temp" toml:"temp" yaml:"temp"`
	UserData          string `json:"userData,omitempty" toml:"userData,omitempty" yaml:"userData,omitempty"`
}

// NewVariables builds the variable set for appName with resolver r.
// hostDefaultDir is evaluated lazily on every HostDefaultDir call, because
// the host's log location can depend on a name resolved after the snapshot
// was taken.
func NewVariables(r Resolver, appName, appVersion string, hostDefaultDir func() string) *Variables {
	return &Variables{
		AppData:           r.AppData(),
		AppName:           appName,
		AppVersion:        appVersion,
		Home:              r.Home(),
		LibraryDefaultDir: r.LogDir(appName),
		LibraryTemplate:   r.LogDir(AppNameToken),
		Temp:              r.Temp(),
		UserData:          r.UserData(appName),
		hostDefaultDir:    hostDefaultDir,
	}
}

// HostDefaultDir returns the host framework's default log directory,
// evaluated now.
func (v *Variables) HostDefaultDir() string {
	if v.hostDefaultDir == nil {
		return v.LibraryDefaultDir
	}
	return v.hostDefaultDir()
}

// Snapshot evaluates the live fields and returns a plain value.
func (v *Variables) Snapshot() Snapshot {
	return Snapshot{
		AppData:           v.AppData,
		AppName:           v.AppName,
		AppVersion:        v.AppVersion,
		HostDefaultDir:    v.HostDefaultDir(),
		Home:              v.Home,
		LibraryDefaultDir: v.LibraryDefaultDir,
		LibraryTemplate:   v.LibraryTemplate,
		Temp:              v.Temp,
		UserData:          v.UserData,
	}
}

// MarshalJSON encodes the evaluated snapshot.
func (v *Variables) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Snapshot())
}

// Expand replaces {name} tokens in pattern with the matching variable.
// Unknown tokens are left in place.
func (v *Variables) Expand(pattern string) string {
	if !strings.Contains(pattern, "{") {
		return pattern
	}
	return strings.NewReplacer(
		"{appData}", v.AppData,
		AppNameToken, v.AppName,
		"{appVersion}", v.AppVersion,
		"{hostDefaultDir}", v.HostDefaultDir(),
		"{home}", v.Home,
		"{libraryDefaultDir}", v.LibraryDefaultDir,
		"{libraryTemplate}", v.LibraryTemplate,
		"{temp}", v.Temp,
		"{userData}", v.UserData,
	).Replace(pattern)
}
