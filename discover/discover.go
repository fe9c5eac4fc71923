// Package discover resolves the document set to lint: it walks the given
// roots, keeps files with configured extensions, and excludes anything
// matching the ignore globs. Patterns support doublestar syntax
// ("**/drafts/**").
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/quillcheck/quill/errors"
)

// Files returns the lintable files under roots, sorted, without duplicates.
// A root that is itself a file is included when its extension matches,
// unless ignored.
func Files(roots, extensions, ignore []string, logger *zap.SugaredLogger) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot lint %s", root)
		}

		if !info.IsDir() {
			if hasExtension(root, extensions) && !ignored(root, ignore) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				if path != root && ignored(path+"/", ignore) {
					logger.Debugw("skipping ignored directory", "path", path)
					return filepath.SkipDir
				}
				return nil
			}
			if hasExtension(path, extensions) && !ignored(path, ignore) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk %s", root)
		}
	}

	sort.Strings(files)
	return files, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ignored reports whether any pattern matches the slash form of path.
// Directory candidates are passed with a trailing slash so patterns like
// "**/drafts/**" prune the whole subtree.
func ignored(path string, patterns []string) bool {
	candidate := filepath.ToSlash(path)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, strings.TrimSuffix(candidate, "/")); err == nil && ok {
			return true
		}
		if strings.HasSuffix(candidate, "/") {
			// Match the directory itself against "**/name/**" style
			// patterns by probing with a phantom child.
			if ok, err := doublestar.Match(pattern, candidate+"x"); err == nil && ok {
				return true
			}
		}
	}
	return false
}
