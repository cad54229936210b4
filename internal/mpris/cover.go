package mpris

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Cover art base names and extensions, best first.
var (
	coverBases = []string{"cover", "folder", "front", "album"}
	coverExts  = []string{".jpg", ".jpeg", ".png"}
)

// FindCover returns the best cover image in folder, or "" if there is
// none. Names match case-insensitively, so Cover.JPG counts.
func FindCover(folder string) string {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return ""
	}

	best, bestRank := "", -1
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		rank := coverRank(e.Name())
		if rank < 0 || (bestRank >= 0 && rank >= bestRank) {
			continue
		}
		best, bestRank = filepath.Join(folder, e.Name()), rank
	}
	return best
}

// coverRank orders by base name first, then extension. -1 means not a cover.
func coverRank(name string) int {
	name = strings.ToLower(name)
	ext := filepath.Ext(name)
	bi := slices.Index(coverBases, strings.TrimSuffix(name, ext))
	ei := slices.Index(coverExts, ext)
	if bi < 0 || ei < 0 {
		return -1
	}
	return bi*len(coverExts) + ei
}
