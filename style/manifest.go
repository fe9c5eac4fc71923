package style

import (
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"

	"github.com/quillcheck/quill/errors"
	"github.com/quillcheck/quill/version"
)

// Manifest is the optional style.toml at the root of a style package.
type Manifest struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`

	// Quill is a semver constraint on the quill version the style needs,
	// e.g. ">= 0.4". Empty means any version.
	Quill string `toml:"quill"`
}

// ReadManifest parses a style package's style.toml. Returns
// errors.ErrNotFound when the package carries no manifest.
func ReadManifest(dir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "style.toml"))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(errors.ErrNotFound, "no manifest in %s", dir)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest in %s", dir)
	}

	var manifest Manifest
	if err := toml.Unmarshal(raw, &manifest); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "invalid style.toml in %s: %v", dir, err)
	}
	return &manifest, nil
}

// checkManifest validates the style's quill version constraint, if any.
// The dev build (version "dev") satisfies every constraint so local
// development never trips version gates.
func checkManifest(dir, name string) error {
	manifest, err := ReadManifest(dir)
	if errors.Is(err, errors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if manifest.Quill == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(manifest.Quill)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"style %q has invalid quill constraint %q: %v", name, manifest.Quill, err)
	}

	current := version.Get().Version
	if current == "dev" {
		return nil
	}
	quillVersion, err := semver.NewVersion(current)
	if err != nil {
		return errors.Wrapf(err, "quill version %q is not semver", current)
	}
	if !constraint.Check(quillVersion) {
		return errors.WithHintf(
			errors.Newf("style %q requires quill %s, this is %s", name, manifest.Quill, current),
			"upgrade quill or pin an older release of the style",
		)
	}
	return nil
}
