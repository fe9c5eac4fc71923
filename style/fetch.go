package style

// Remote style package fetching. Uses hashicorp/go-getter for flexible
// source handling: git URLs, GitHub shorthand, plain HTTP, and archives
// (zip, tar.gz) with auto-extraction.

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/quillcheck/quill/errors"
)

// Fetch downloads a style package from source into stylesPath and returns
// the installed style name. The name comes from the manifest when present,
// otherwise from the last path element of the source.
func Fetch(source, stylesPath string, logger *zap.SugaredLogger) (string, error) {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	detected, err := getter.Detect(source, pwd, getter.Detectors)
	if err != nil {
		return "", errors.Wrapf(err, "failed to detect source type for %s", source)
	}
	logger.Debugw("resolved style source", "source", source, "detected", detected)

	staging, err := os.MkdirTemp("", "quill-style-*")
	if err != nil {
		return "", errors.Wrap(err, "failed to create staging directory")
	}
	defer os.RemoveAll(staging)

	client := &getter.Client{
		Ctx:     context.Background(),
		Src:     detected,
		Dst:     staging,
		Mode:    getter.ClientModeDir,
		Getters: getter.Getters,
	}
	if err := client.Get(); err != nil {
		return "", errors.Wrapf(err, "failed to fetch style from %s", source)
	}

	name := styleName(source, staging)
	if err := checkManifest(staging, name); err != nil {
		return "", err
	}
	target := filepath.Join(stylesPath, name)

	if err := os.MkdirAll(stylesPath, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create styles directory")
	}
	if err := os.RemoveAll(target); err != nil {
		return "", errors.Wrapf(err, "failed to replace existing style %q", name)
	}
	if err := os.Rename(staging, target); err != nil {
		// Rename fails across filesystems; fall back to a copy.
		if copyErr := copyTree(staging, target); copyErr != nil {
			return "", errors.Wrapf(copyErr, "failed to install style %q", name)
		}
	}

	logger.Infow("style installed", "style", name, "path", target)
	return name, nil
}

func styleName(source, staging string) string {
	if manifest, err := ReadManifest(staging); err == nil && manifest.Name != "" {
		return manifest.Name
	}
	base := filepath.Base(strings.TrimSuffix(source, "/"))
	for _, suffix := range []string{".git", ".zip", ".tar.gz", ".tgz"} {
		base = strings.TrimSuffix(base, suffix)
	}
	return base
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, raw, 0o644)
	})
}
