package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/san-kum/sphpost/internal/particles"
)

// Layout locates a snapshot and the places its outputs go.
type Layout struct {
	Path    string // absolute, symlinks resolved
	Dir     string // directory holding the snapshot and its companions
	File    string // snapshot file name
	Graphs  string // output directory for figures
	Suffix  string // case identity used in figure names
	H5Count int    // number of .h5 files in Dir
}

// Resolve derives the layout from the snapshot path. Figures go to a
// "graphs" directory three levels above the data directory, and are suffixed
// with "<parent>-<dir>" so different cases never overwrite each other.
func Resolve(path string) (Layout, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Layout{}, err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Layout{}, &particles.InputError{Path: path, Wrapped: particles.ErrMissingInput}
		}
		return Layout{}, err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	l := Layout{
		Path: abs,
		Dir:  filepath.Dir(abs),
		File: filepath.Base(abs),
	}
	l.Suffix, l.Graphs = caseNames(l.Dir)

	h5s, err := matchDir(l.Dir, "*.h5")
	if err != nil {
		return Layout{}, err
	}
	l.H5Count = len(h5s)
	return l, nil
}

func caseNames(dir string) (suffix, graphs string) {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(dir)), "/")
	n := len(parts)

	suffix = parts[n-1]
	if n >= 2 && parts[n-2] != "" {
		suffix = parts[n-2] + "-" + parts[n-1]
	}

	if n < 4 {
		return suffix, filepath.Join(dir, "graphs")
	}
	root := strings.Join(parts[:n-3], "/")
	if root == "" {
		root = "/"
	}
	return suffix, filepath.Join(filepath.FromSlash(root), "graphs")
}

// FindCompanion returns the single file in dir whose name matches pattern.
// No match gives ErrMissingInput, several give ErrAmbiguousInput.
func FindCompanion(dir, pattern string) (string, error) {
	matches, err := matchDir(dir, pattern)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", &particles.InputError{
			Path:    filepath.Join(dir, pattern),
			Wrapped: particles.ErrMissingInput,
		}
	case 1:
		return matches[0], nil
	default:
		return "", &particles.InputError{
			Path:    filepath.Join(dir, pattern),
			Wrapped: fmt.Errorf("%w: %s", particles.ErrAmbiguousInput, strings.Join(matches, ", ")),
		}
	}
}

func matchDir(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &particles.InputError{Path: dir, Wrapped: particles.ErrMissingInput}
		}
		return nil, err
	}

	matches := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(matches)
	return matches, nil
}
