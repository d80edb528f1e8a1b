package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeManifest writes a manifest file into a fresh directory and returns its
// path.
func writeManifest(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ManifestFileName)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing manifest: %s", err)
	}

	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
name = "demo"
main = "src/main.sb"
output = "out/demo.ll"
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if m.Name != "demo" || m.Main != "src/main.sb" || m.Output != "out/demo.ll" {
		t.Errorf("manifest fields parsed as %+v", m)
	}
}

func TestLoadManifestMissingName(t *testing.T) {
	path := writeManifest(t, `main = "main.sb"`)

	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "module name") {
		t.Errorf("expected a missing-name error, got %v", err)
	}
}

func TestLoadManifestMissingMain(t *testing.T) {
	path := writeManifest(t, `name = "demo"`)

	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "main file") {
		t.Errorf("expected a missing-main error, got %v", err)
	}
}

func TestLoadManifestBadTOML(t *testing.T) {
	path := writeManifest(t, `name = `)

	if _, err := LoadManifest(path); err == nil {
		t.Error("expected a parse error, got none")
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)

	if _, err := LoadManifest(path); err == nil {
		t.Error("expected an open error, got none")
	}
}

func TestMinVersionGate(t *testing.T) {
	if err := checkMinVersion(""); err != nil {
		t.Errorf("empty min-version should pass, got %v", err)
	}

	if err := checkMinVersion("0.0.1"); err != nil {
		t.Errorf("older min-version should pass, got %v", err)
	}

	if err := checkMinVersion("99.0.0"); err == nil {
		t.Error("newer min-version should be rejected")
	}

	if err := checkMinVersion("not-a-version"); err == nil {
		t.Error("malformed min-version should be rejected")
	}
}
