package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml"

	"sablec/report"
)

// ManifestFileName is the name of the build manifest in a module directory.
const ManifestFileName = "sable-mod.toml"

// Manifest represents a Sable build manifest as it is encoded in TOML.
type Manifest struct {
	Name string `toml:"name"`

	// Main is the module-relative path of the root source file.
	Main string `toml:"main"`

	// MinVersion is the minimum compiler version the module requires, in
	// semantic version form.  Empty means any version.
	MinVersion string `toml:"min-version"`

	// Output is the module-relative output path, overridable by -o.
	Output string `toml:"output"`
}

// loadManifestRoot resolves a directory root through its build manifest: the
// manifest names the root source file and, optionally, the output path and
// a minimum compiler version.
func (c *Compiler) loadManifestRoot() {
	dir := c.srcPath

	m, err := LoadManifest(filepath.Join(dir, ManifestFileName))
	if err != nil {
		report.ReportFatal("%s", err.Error())
	}

	c.manifest = m
	c.srcPath = filepath.Join(dir, m.Main)
	c.reprPath = m.Main

	if m.Output != "" && c.outputPath == "" {
		c.outputPath = filepath.Join(dir, m.Output)
	}
}

// LoadManifest loads and validates a build manifest.
func LoadManifest(path string) (*Manifest, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open module manifest at `%s`: %s", path, err.Error())
	}

	m := &Manifest{}
	if err := toml.Unmarshal(buff, m); err != nil {
		return nil, fmt.Errorf("error parsing module manifest at `%s`: %s", path, err.Error())
	}

	if m.Name == "" {
		return nil, fmt.Errorf("module manifest at `%s` is missing a module name", path)
	}

	if m.Main == "" {
		return nil, fmt.Errorf("module manifest at `%s` is missing a main file", path)
	}

	if err := checkMinVersion(m.MinVersion); err != nil {
		return nil, err
	}

	return m, nil
}

// checkMinVersion gates compilation on the manifest's minimum compiler
// version.
func checkMinVersion(minVersion string) error {
	if minVersion == "" {
		return nil
	}

	min, err := semver.NewVersion(minVersion)
	if err != nil {
		return fmt.Errorf("invalid min-version `%s`: %s", minVersion, err.Error())
	}

	cur := semver.MustParse(SableVersion)
	if cur.LessThan(min) {
		return fmt.Errorf("module requires sablec v%s or newer, but this is v%s", min, cur)
	}

	return nil
}
