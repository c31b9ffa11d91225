// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestEnv(t *testing.T) {
	t.Parallel()

	env := Env{"B": "2", "A": "1"}
	if env.Getenv("A") != "1" || env.Getenv("missing") != "" {
		t.Errorf("Getenv() mismatch")
	}
	if got := env.Environ(); !slices.Equal(got, []string{"A=1", "B=2"}) {
		t.Errorf("Environ() = %v", got)
	}
}

func TestMustSetenvRestores(t *testing.T) {
	const key = "HOSTLOG_TESTUTIL_PROBE"
	t.Setenv(key, "before")

	restore := MustSetenv(t, key, "during")
	if os.Getenv(key) != "during" {
		t.Fatal("value not set")
	}
	restore()
	if os.Getenv(key) != "before" {
		t.Errorf("value = %q after restore", os.Getenv(key))
	}

	restore = MustUnsetenv(t, key)
	if _, ok := os.LookupEnv(key); ok {
		t.Fatal("value not unset")
	}
	restore()
	if os.Getenv(key) != "before" {
		t.Errorf("value = %q after restore", os.Getenv(key))
	}
}

func TestMustWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "file.txt")
	MustWriteFile(t, path, "hello")
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
}

func TestMustChdir(t *testing.T) {
	dir := t.TempDir()
	original, _ := os.Getwd()

	restore := MustChdir(t, dir)
	wd, _ := os.Getwd()
	resolved, _ := filepath.EvalSymlinks(dir)
	if wd != dir && wd != resolved {
		t.Errorf("Getwd() = %q, want %q", wd, dir)
	}
	restore()
	if wd, _ := os.Getwd(); wd != original {
		t.Errorf("Getwd() after restore = %q", wd)
	}
}
