package player

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/dustin/go-humanize"
)

// TrackInfo holds tag metadata for display. Fields are empty when the file
// carries no tags.
type TrackInfo struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Year   int
	Track  int
	Size   int64
}

// SizeString returns the file size in human units, e.g. "4.2 MB".
func (i *TrackInfo) SizeString() string {
	if i == nil || i.Size <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(i.Size))
}

// ReadTrackInfo reads tags from path. A file without readable tags is not an
// error: the title falls back to the file name.
func ReadTrackInfo(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info := &TrackInfo{
		Path:  path,
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}
	if st, err := f.Stat(); err == nil {
		info.Size = st.Size()
	}

	m, err := tag.ReadFrom(f)
	if err != nil {
		return info, nil //nolint:nilerr // untagged files are common
	}

	if title := m.Title(); title != "" {
		info.Title = title
	}
	info.Artist = m.Artist()
	if info.Artist == "" {
		info.Artist = m.AlbumArtist()
	}
	info.Album = m.Album()
	info.Year = m.Year()
	info.Track, _ = m.Track()

	return info, nil
}
