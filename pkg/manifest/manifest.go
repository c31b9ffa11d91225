// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hostlog/hostlog/pkg/cueutil"
	"github.com/hostlog/hostlog/pkg/types"
)

const (
	// FileName is the manifest file searched for.
	FileName = "package.json"

	// MaxFileSize bounds how much of a manifest is read.
	MaxFileSize = 1 << 20
)

// Metadata is the subset of a manifest the environment layer uses.
type Metadata struct {
	Name        string `json:"name"`
	ProductName string `json:"productName"`
	Version     string `json:"version"`

	// Path is the manifest file the metadata was read from.
	Path types.FilesystemPath `json:"-"`
}

// DisplayName returns the product name when present, else the package name.
func (m *Metadata) DisplayName() string {
	if m == nil {
		return ""
	}
	if m.ProductName != "" {
		return m.ProductName
	}
	return m.Name
}

// FindUp walks from dir towards the filesystem root and returns the path of
// the first manifest found. It returns "" when none exists.
func FindUp(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Read parses the manifest at path. An empty path is rejected with
// types.ErrInvalidFilesystemPath.
func Read(path string) (*Metadata, error) {
	manifestPath := types.FilesystemPath(path)
	if err := manifestPath.Validate(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if err := cueutil.CheckFileSize(data, MaxFileSize, path); err != nil {
		return nil, err
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	m.Path = manifestPath
	return &m, nil
}

// Find returns the metadata of the nearest manifest above dir.
// It returns nil, nil when no manifest exists or the nearest one has no
// name; the search does not continue past a nameless manifest.
func Find(dir string) (*Metadata, error) {
	path, err := FindUp(dir)
	if err != nil || path == "" {
		return nil, err
	}

	m, err := Read(path)
	if err != nil {
		return nil, err
	}
	if m.DisplayName() == "" {
		return nil, nil
	}
	return m, nil
}
