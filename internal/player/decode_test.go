package player

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestSkipID3v2(t *testing.T) {
	// 10-byte header declaring a 5-byte body, then payload.
	tagged := append([]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 5}, []byte("xxxxxfLaC")...)

	tests := []struct {
		name    string
		data    []byte
		wantPos int64
	}{
		{"with tag", tagged, 15},
		{"without tag", []byte("fLaC-and-more-bytes"), 0},
		{"short file", []byte("fLaC"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			if err := skipID3v2(r); err != nil {
				t.Fatalf("skipID3v2 failed: %v", err)
			}
			pos, _ := r.Seek(0, io.SeekCurrent)
			if pos != tt.wantPos {
				t.Errorf("position = %d, want %d", pos, tt.wantPos)
			}
		})
	}
}

func TestSpeaker_Open_RejectsUnsupportedExtension(t *testing.T) {
	s := NewSpeaker()
	if _, err := s.Open("/music/notes.txt"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestSpeaker_Open_MissingFile(t *testing.T) {
	s := NewSpeaker()
	if _, err := s.Open(filepath.Join(t.TempDir(), "gone.flac")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSpeaker_Open_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.flac")
	if err := os.WriteFile(path, []byte("definitely not flac"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewSpeaker()
	if _, err := s.Open(path); err == nil {
		t.Error("expected decode error for corrupt file")
	}
}
