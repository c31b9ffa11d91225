// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// EnvResourcesPath names the directory where a packaged application keeps
// its bundled resources. When set, "<dir>/app" is searched for a manifest.
const EnvResourcesPath = "HOSTLOG_RESOURCES_PATH"

// Reader searches a fixed list of roots for the first usable manifest.
type Reader struct {
	// Roots are searched first, in order.
	Roots []string
	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string
	// Logger receives warnings about unreadable manifests. Optional.
	Logger *log.Logger
	// SkipDefaultRoots disables the executable, resources and working
	// directory roots.
	SkipDefaultRoots bool
}

// Lookup returns the first manifest with a name found from the search
// roots, or nil when none resolves. Unreadable or malformed manifests are
// logged and skipped.
func (r *Reader) Lookup() *Metadata {
	for _, root := range r.searchRoots() {
		m, err := Find(root)
		if err != nil {
			if r.Logger != nil {
				r.Logger.Warn("skipping unreadable manifest", "root", root, "err", err)
			}
			continue
		}
		if m != nil {
			return m
		}
	}
	return nil
}

// FindAndReadFromWorkingDir looks up the manifest nearest to the working directory.
func FindAndReadFromWorkingDir() (*Metadata, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Find(wd)
}

func (r *Reader) searchRoots() []string {
	roots := append([]string(nil), r.Roots...)
	if r.SkipDefaultRoots {
		return roots
	}

	if exe, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Dir(exe))
	}

	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if res := getenv(EnvResourcesPath); res != "" {
		roots = append(roots, filepath.Join(res, "app"))
	}

	if wd, err := os.Getwd(); err == nil {
		roots = append(roots, wd)
	}
	return roots
}
