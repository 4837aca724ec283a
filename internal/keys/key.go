package keys

import (
	"fmt"
	"strconv"
	"strings"
)

// SemitonesPerOctave is the number of keys in one octave
const SemitonesPerOctave = 12

// noteNames is indexed by semitone within the octave
var noteNames = [SemitonesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Key is a piano key identified by its MIDI-like index (0 = C0)
type Key int

// Index returns the key index as a plain int
func (k Key) Index() int { return int(k) }

// Octave returns the octave the key belongs to. Keys below C0 fall in
// negative octaves.
func (k Key) Octave() int {
	if k < 0 {
		return (int(k)+1)/SemitonesPerOctave - 1
	}
	return int(k) / SemitonesPerOctave
}

// NoteIndex returns the semitone within the octave (0 = C, 11 = B)
func (k Key) NoteIndex() int {
	return (int(k)%SemitonesPerOctave + SemitonesPerOctave) % SemitonesPerOctave
}

// IsBlack reports whether the key is a sharp
func (k Key) IsBlack() bool {
	switch k.NoteIndex() {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// Note returns the note letter without octave, e.g. "D#"
func (k Key) Note() string { return noteNames[k.NoteIndex()] }

// Name returns the note name with octave, e.g. "D#4" for key 51
func (k Key) Name() string { return k.Note() + strconv.Itoa(k.Octave()) }

func (k Key) String() string { return k.Name() }

// ParseName is the inverse of Key.Name
func ParseName(name string) (Key, error) {
	split := strings.IndexAny(name, "-0123456789")
	if split <= 0 {
		return 0, fmt.Errorf("invalid note name: %q", name)
	}

	note, octaveText := name[:split], name[split:]
	octave, err := strconv.Atoi(octaveText)
	if err != nil {
		return 0, fmt.Errorf("invalid octave in %q: %w", name, err)
	}

	for i, n := range noteNames {
		if n == note {
			return Key(octave*SemitonesPerOctave + i), nil
		}
	}
	return 0, fmt.Errorf("unknown note %q in %q", note, name)
}
