// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FindFilesByExtension searches every root for files ending with extension.
// A root may be a directory, searched recursively, or a single file. Roots
// that do not exist are skipped. Each file is returned once, in discovery
// order.
func FindFilesByExtension(roots []string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		files = append(files, clean)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", root, err)
		}

		if !info.IsDir() {
			if strings.HasSuffix(info.Name(), extension) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// Exclude returns files without the entries that resolve to one of skip.
func Exclude(files []string, skip ...string) []string {
	drop := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		drop[filepath.Clean(s)] = struct{}{}
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := drop[filepath.Clean(f)]; !ok {
			out = append(out, f)
		}
	}
	return out
}
