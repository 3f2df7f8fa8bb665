// Package adapter contains the filesystem, persistence and watch adapters used
// by the manimcells workflow.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "manimcells.dev/pkg/manimcells/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Get collects the Python sources under roots that pass filter.
	Get(ctx context.Context, roots []m.Path, filter *PathFilter) ([]m.Source, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns a stable SHA-256 fingerprint for the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// WatchRoots resolves roots to the directories that must be watched.
	WatchRoots(roots []m.Path) ([]m.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the disk-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects Python source files for the provided roots. A root ending in
// "/..." is scanned recursively; a plain directory only at its top level. Files
// named explicitly are kept even when filter would reject them.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, roots []m.Path, filter *PathFilter) ([]m.Source, error) {
	if len(roots) == 0 {
		return []m.Source{}, nil
	}

	seen := make(map[string]struct{})

	var sources []m.Source

	add := func(fullPath, shortPath string) {
		if _, exists := seen[fullPath]; exists {
			return
		}

		seen[fullPath] = struct{}{}
		sources = append(sources, m.Source{
			Origin: &m.File{FullPath: m.Path(fullPath), ShortPath: m.Path(shortPath)},
		})
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			add(rootPath, string(root))
			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			rel, err := filepath.Rel(rootPath, path)
			if err != nil {
				return err
			}

			rel = filepath.ToSlash(rel)

			if info.IsDir() {
				if path != rootPath && filter.SkipDir(rel) {
					slog.Debug("Skipping directory", "path", path)
					return filepath.SkipDir
				}

				return nil
			}

			if !filter.Match(rel) {
				return nil
			}

			add(path, shortPath(string(root), rootPath, path))

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Origin.FullPath < sources[j].Origin.FullPath
	})

	return sources, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WatchRoots returns the absolute directories covering roots. A file root is
// watched through its parent directory.
func (a *LocalSourceFSAdapter) WatchRoots(roots []m.Path) ([]m.Path, error) {
	seen := make(map[string]struct{})

	var dirs []m.Path

	for _, root := range roots {
		rootPath, _, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			rootPath = filepath.Dir(rootPath)
		}

		if _, exists := seen[rootPath]; exists {
			continue
		}

		seen[rootPath] = struct{}{}
		dirs = append(dirs, m.Path(rootPath))
	}

	return dirs, nil
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}

// shortPath renders path relative to the user-supplied root so reports stay
// readable.
func shortPath(root, rootPath, path string) string {
	rel, err := filepath.Rel(rootPath, path)
	if err != nil {
		return path
	}

	base, _ := parseRootPath(root)
	if base == "" || base == "." {
		return rel
	}

	return filepath.Join(base, rel)
}
