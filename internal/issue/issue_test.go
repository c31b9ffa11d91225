// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValuesOrderedAndComplete(t *testing.T) {
	t.Parallel()

	vals := Values()
	if len(vals) != len(issues) {
		t.Fatalf("Values() = %d entries, want %d", len(vals), len(issues))
	}
	for i := 1; i < len(vals); i++ {
		if vals[i-1].Id() >= vals[i].Id() {
			t.Errorf("Values() not ordered at %d", i)
		}
	}
	for id := AppNameUnresolvedId; id <= UnverifiedOSVersionId; id++ {
		if Get(id) == nil {
			t.Errorf("Get(%d) = nil", id)
		}
	}
	if Get(0) != nil {
		t.Error("Get(0) should be nil")
	}
}

func TestAllIssuesHaveContent(t *testing.T) {
	t.Parallel()

	for _, i := range Values() {
		if strings.TrimSpace(string(i.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no message", i.Id())
		}
		if len(i.DocLinks()) == 0 {
			t.Errorf("issue %d has no doc links", i.Id())
		}
	}
}

func TestLinksAreCopies(t *testing.T) {
	t.Parallel()

	i := Get(ConfigLoadFailedId)
	links := i.ExtLinks()
	links[0] = "mutated"
	if i.ExtLinks()[0] == "mutated" {
		t.Error("ExtLinks() exposes internal slice")
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	for _, i := range Values() {
		out, err := i.Render("notty")
		if err != nil {
			t.Fatalf("Render(%d) error = %v", i.Id(), err)
		}
		if !strings.Contains(out, "See also") {
			t.Errorf("Render(%d) missing links section:\n%s", i.Id(), out)
		}
	}

	out, err := Get(AppNameUnresolvedId).Render("notty")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "SetAppName") {
		t.Errorf("rendered issue missing guidance:\n%s", out)
	}
}
