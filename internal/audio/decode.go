package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"
	"github.com/hajimehoshi/go-mp3"
)

// ErrUnsupportedFormat is returned for files that are neither MP3 nor WAV
var ErrUnsupportedFormat = errors.New("unsupported sample format")

// Decode reads the sample at path into a seekable stream of signed 16-bit
// little-endian stereo frames. rate is the output rate; a mismatch is logged
// but not resampled.
func Decode(path string, rate int) (io.ReadSeeker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		dec, err := mp3.NewDecoder(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		warnRate(path, dec.SampleRate(), rate)
		return dec, nil

	case ".wav":
		pcm, srcRate, err := decodeWAV(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		warnRate(path, srcRate, rate)
		return bytes.NewReader(pcm), nil
	}

	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

func decodeWAV(data []byte) ([]byte, int, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer")
	}
	return stereo16(buf), buf.Format.SampleRate, nil
}

// stereo16 converts a float PCM buffer to interleaved 16-bit stereo.
// Mono is duplicated, extra channels are dropped.
func stereo16(buf *goaudio.Float32Buffer) []byte {
	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	out := make([]byte, frames*4)

	for i := 0; i < frames; i++ {
		left := toInt16(buf.Data[i*channels])
		right := left
		if channels > 1 {
			right = toInt16(buf.Data[i*channels+1])
		}
		binary.LittleEndian.PutUint16(out[i*4:], uint16(left))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(right))
	}
	return out
}

func toInt16(v float32) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

func warnRate(path string, got, want int) {
	if want > 0 && got != want {
		log.Printf("Sample %s is %d Hz, output runs at %d Hz", path, got, want)
	}
}
