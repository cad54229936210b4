// Package tracklist turns a music folder into an ordered list of tracks.
package tracklist

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/folderplay/internal/player"
)

// Track is one playable file. Name is the file name without extension and
// is what the list shows; Path is what the speaker opens.
type Track struct {
	Name string
	Path string
}

// NameFromPath derives a track name from a file path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load scans folder (not recursively) for music files. Hidden files are
// skipped and tracks are sorted by name, case-insensitively.
func Load(folder string) ([]Track, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", folder)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "read folder %s", abs)
	}

	tracks := make([]Track, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !player.IsMusicFile(name) {
			continue
		}
		path := filepath.Join(abs, name)
		tracks = append(tracks, Track{Name: NameFromPath(path), Path: path})
	}

	slices.SortStableFunc(tracks, func(a, b Track) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})

	return tracks, nil
}
