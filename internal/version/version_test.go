// ABOUTME: Tests for version constants
// ABOUTME: Ensures version information is properly defined
package version

import (
	"strings"
	"testing"
)

func TestConstantsDefined(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Product == "" {
		t.Error("Product should not be empty")
	}
	if Manufacturer == "" {
		t.Error("Manufacturer should not be empty")
	}
}

func TestVersionFormat(t *testing.T) {
	// Version is either semver-ish or "dev"; it always has a digit or
	// the dev marker.
	if Version != "dev" && !strings.ContainsAny(Version, "0123456789") {
		t.Errorf("Version %q is neither a release number nor dev", Version)
	}
}

func TestNotPlaceholder(t *testing.T) {
	placeholders := []string{"TODO", "FIXME", "XXX", "placeholder"}

	for _, p := range placeholders {
		if Version == p || Product == p || Manufacturer == p {
			t.Errorf("version constant left as placeholder %q", p)
		}
	}
}
