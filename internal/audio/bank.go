package audio

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync"
)

// SampleID identifies one of the pre-recorded samples
type SampleID string

const (
	SampleDo  SampleID = "do"
	SampleRe  SampleID = "re"
	SampleMi  SampleID = "mi"
	SampleFa  SampleID = "fa"
	SampleSol SampleID = "sol"
	SampleLja SampleID = "lja"
	SampleSi  SampleID = "si"
)

// DefaultFiles maps every sample to its file name inside the sounds directory
var DefaultFiles = map[SampleID]string{
	SampleDo:  "noty-do.mp3",
	SampleRe:  "re.mp3",
	SampleMi:  "mi.mp3",
	SampleFa:  "fa.mp3",
	SampleSol: "sol.mp3",
	SampleLja: "lja.mp3",
	SampleSi:  "si.mp3",
}

// DefaultVolume is the playback volume in percent
const DefaultVolume = 50

// Voice is a restartable player for one decoded stream
type Voice interface {
	Play()
	Pause()
	Seek(offset int64, whence int) (int64, error)
	SetVolume(volume float64)
	Close() error
}

// Output creates voices on an audio device
type Output interface {
	NewVoice(src io.ReadSeeker) Voice
	SampleRate() int
}

// Bank owns one voice per sample and replays them on demand
type Bank struct {
	mu     sync.Mutex
	out    Output
	voices map[SampleID]Voice
	volume int
	muted  bool
}

// NewBank creates an empty bank playing through out
func NewBank(out Output) *Bank {
	return &Bank{
		out:    out,
		voices: make(map[SampleID]Voice),
		volume: DefaultVolume,
	}
}

// Load decodes the file at path and binds it to id, replacing any voice
// already loaded for it
func (b *Bank) Load(id SampleID, path string) error {
	stream, err := Decode(path, b.out.SampleRate())
	if err != nil {
		return err
	}

	voice := b.out.NewVoice(stream)

	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.voices[id]; ok {
		old.Pause()
		if err := old.Close(); err != nil {
			log.Printf("Failed to close previous voice for %s: %v", id, err)
		}
	}
	voice.SetVolume(b.gain())
	b.voices[id] = voice
	return nil
}

// LoadDir loads every default sample from dir. Samples that fail to load
// stay silent.
func (b *Bank) LoadDir(dir string) {
	for id, name := range DefaultFiles {
		path := filepath.Join(dir, name)
		if err := b.Load(id, path); err != nil {
			log.Printf("Sample %s unavailable: %v", id, err)
			continue
		}
		log.Printf("Loaded sample %s from %s", id, path)
	}
}

// Loaded reports whether a voice exists for id
func (b *Bank) Loaded(id SampleID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.voices[id]
	return ok
}

// Play restarts the sample from the beginning. Unknown or unloaded samples
// are ignored.
func (b *Bank) Play(id SampleID) {
	b.mu.Lock()
	voice, ok := b.voices[id]
	b.mu.Unlock()
	if !ok {
		return
	}

	voice.Pause()
	if _, err := voice.Seek(0, io.SeekStart); err != nil {
		log.Printf("Failed to rewind sample %s: %v", id, err)
		return
	}
	voice.Play()
}

// SetVolume sets the volume of every sample, in percent
func (b *Bank) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = percent
	b.applyGain()
}

// Volume returns the current volume in percent
func (b *Bank) Volume() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.volume
}

// SetMuted silences every sample without forgetting the volume
func (b *Bank) SetMuted(muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.muted = muted
	b.applyGain()
}

// Muted reports whether the bank is muted
func (b *Bank) Muted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.muted
}

// Close releases every voice
func (b *Bank) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var firstErr error
	for id, voice := range b.voices {
		voice.Pause()
		if err := voice.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close sample %s: %w", id, err)
		}
		delete(b.voices, id)
	}
	return firstErr
}

func (b *Bank) gain() float64 {
	if b.muted {
		return 0
	}
	return float64(b.volume) / 100
}

func (b *Bank) applyGain() {
	gain := b.gain()
	for _, voice := range b.voices {
		voice.SetVolume(gain)
	}
}
