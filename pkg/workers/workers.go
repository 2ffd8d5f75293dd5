// Package workers enumerates the worker images shown on the praise page.
package workers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/praise/errors"
	"github.com/moby/patternmatcher"
)

// DefaultExtensions are the image types recognized when Options.Extensions is empty.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// DefaultPlaceholderCount is the number of synthetic workers used when none are found.
const DefaultPlaceholderCount = 4

// Worker is one selectable image with its display name.
type Worker struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Options controls enumeration.
type Options struct {
	// Extensions are compared case-insensitively, with the leading dot.
	Extensions []string
	// Exclude holds dockerignore-style patterns matched against file names.
	Exclude []string
	// Placeholders substitutes Worker1..WorkerN when nothing matches.
	Placeholders bool
	// PlaceholderCount defaults to DefaultPlaceholderCount.
	PlaceholderCount int
}

// Enumerate lists the images in dir, sorted by file name so indices stay
// stable between page loads. A missing directory or an empty match yields no
// workers (or placeholders); only an unreadable directory is an error.
func Enumerate(dir string, opts Options) ([]Worker, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fallback(dir, opts), nil
		}
		return nil, errors.AssetsUnreadable(dir, err)
	}

	var matcher *patternmatcher.PatternMatcher
	if len(opts.Exclude) > 0 {
		matcher, err = patternmatcher.New(opts.Exclude)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid exclude pattern")
		}
	}

	extensions := normalizeExtensions(opts.Extensions)

	var found []Worker
	for _, entry := range entries {
		name := entry.Name()
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		// ".png" alone is a hidden file with no extension, not a worker.
		if stem == "" || !extensions[strings.ToLower(ext)] {
			continue
		}
		if !isImageFile(dir, entry) {
			continue
		}
		if matcher != nil {
			excluded, err := matcher.MatchesOrParentMatches(name)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid exclude pattern")
			}
			if excluded {
				continue
			}
		}
		found = append(found, Worker{
			Name: stem,
			Path: filepath.Join(dir, name),
		})
	}

	if len(found) == 0 {
		return fallback(dir, opts), nil
	}

	sort.Slice(found, func(i, j int) bool {
		return filepath.Base(found[i].Path) < filepath.Base(found[j].Path)
	})
	return found, nil
}

// isImageFile reports whether entry is a file, following symlinks. Broken
// links and links to directories are skipped.
func isImageFile(dir string, entry os.DirEntry) bool {
	mode := entry.Type()
	if mode&os.ModeSymlink != 0 {
		fi, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			return false
		}
		mode = fi.Mode()
	}
	return mode.IsRegular()
}

// Placeholders returns the synthetic Worker1..WorkerN list for dir.
func Placeholders(dir string, count int) []Worker {
	if count <= 0 {
		count = DefaultPlaceholderCount
	}
	result := make([]Worker, 0, count)
	for i := 1; i <= count; i++ {
		result = append(result, Worker{
			Name:        fmt.Sprintf("Worker%d", i),
			Path:        filepath.Join(dir, fmt.Sprintf("worker%d.png", i)),
			Placeholder: true,
		})
	}
	return result
}

// Names returns the display names in order.
func Names(list []Worker) []string {
	names := make([]string, len(list))
	for i, w := range list {
		names[i] = w.Name
	}
	return names
}

func fallback(dir string, opts Options) []Worker {
	if !opts.Placeholders {
		return []Worker{}
	}
	return Placeholders(dir, opts.PlaceholderCount)
}

func normalizeExtensions(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}
