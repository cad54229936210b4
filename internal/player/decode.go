package player

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// decode picks a decoder from the file extension. The returned streamer
// owns f only for mp3 and ogg; callers close both.
func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case extMP3:
		return decodeGoMP3(f)
	case extFLAC:
		// Some taggers prepend ID3v2 to FLAC files, which the decoder rejects.
		if err := skipID3v2(f); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(f)
	case extWAV:
		return wav.Decode(f)
	case extOGG:
		return vorbis.Decode(f)
	}
	return nil, beep.Format{}, errors.Newf("unsupported format: %s", ext)
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Syncsafe integer: 7 bits per byte.
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])

	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
