package player

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

const mp3BytesPerFrame = 4 // stereo, 16-bit

// mp3Stream adapts llehouerou/go-mp3 to beep.StreamSeekCloser. Unlike beep's
// own mp3 package it seeks by sample, which keeps SetPosition exact.
type mp3Stream struct {
	decoder *mp3.Decoder
	closer  io.Closer
	err     error
	buf     []byte
}

func decodeGoMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	decoder, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Stream{decoder: decoder, closer: rc, buf: make([]byte, 8192)}, format, nil
}

func (d *mp3Stream) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}

	want := len(samples) * mp3BytesPerFrame
	if len(d.buf) < want {
		d.buf = make([]byte, want)
	}

	read, err := io.ReadFull(d.decoder, d.buf[:want])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		d.err = err
		return 0, false
	}

	frames := read / mp3BytesPerFrame
	if frames == 0 {
		return 0, false
	}
	for i := range frames {
		off := i * mp3BytesPerFrame
		left := int16(binary.LittleEndian.Uint16(d.buf[off:]))    //nolint:gosec // audio samples
		right := int16(binary.LittleEndian.Uint16(d.buf[off+2:])) //nolint:gosec // audio samples
		samples[i][0] = float64(left) / 32768.0
		samples[i][1] = float64(right) / 32768.0
	}
	return frames, true
}

func (d *mp3Stream) Err() error { return d.err }

func (d *mp3Stream) Len() int {
	if n := d.decoder.SampleCount(); n > 0 {
		return int(n)
	}
	return 0
}

func (d *mp3Stream) Position() int {
	return int(d.decoder.SamplePosition())
}

func (d *mp3Stream) Seek(p int) error {
	p = max(0, min(p, d.Len()))
	if err := d.decoder.SeekToSample(int64(p)); err != nil {
		return err
	}
	d.err = nil
	return nil
}

func (d *mp3Stream) Close() error {
	return d.closer.Close()
}
