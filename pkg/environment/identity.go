// SPDX-License-Identifier: MPL-2.0

package environment

import (
	"sync"

	"github.com/hostlog/hostlog/pkg/manifest"
)

// identity resolves the application name and version. The manifest is
// looked up at most once.
type identity struct {
	mu       sync.Mutex
	explicit string
	reported func() string
	lookup   func() *manifest.Metadata

	looked bool
	meta   *manifest.Metadata
}

func (id *identity) setName(name string) {
	id.mu.Lock()
	defer id.mu.Unlock()
	id.explicit = name
}

func (id *identity) name() (string, error) {
	id.mu.Lock()
	defer id.mu.Unlock()

	if id.explicit != "" {
		return id.explicit, nil
	}
	if id.reported != nil {
		if name := id.reported(); name != "" {
			return name, nil
		}
	}
	if name := id.metadataLocked().DisplayName(); name != "" {
		return name, nil
	}
	return "", newConfigurationError()
}

func (id *identity) version() string {
	id.mu.Lock()
	defer id.mu.Unlock()
	if m := id.metadataLocked(); m != nil {
		return m.Version
	}
	return ""
}

func (id *identity) metadataLocked() *manifest.Metadata {
	if !id.looked {
		id.looked = true
		if id.lookup != nil {
			id.meta = id.lookup()
		}
	}
	return id.meta
}
