package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "v1.2.3"

	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q, missing version", String())
	}
	if !strings.Contains(Template(), "v1.2.3") {
		t.Errorf("Template() = %q, missing version", Template())
	}
	if got := Get(); got.Version != "v1.2.3" || got.Commit != Commit {
		t.Errorf("Get() = %+v", got)
	}
}
