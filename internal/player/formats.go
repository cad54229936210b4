package player

import (
	"path/filepath"
	"strings"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extOGG  = ".ogg"
)

// SupportedExtensions lists the file extensions the speaker can decode.
var SupportedExtensions = []string{extMP3, extFLAC, extWAV, extOGG}

// IsMusicFile reports whether path has a decodable audio extension.
func IsMusicFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
