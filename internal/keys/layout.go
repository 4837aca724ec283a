package keys

import "errors"

var (
	ErrInvalidOctaves     = errors.New("octave count must be at least 1")
	ErrInvalidOctaveStart = errors.New("starting octave must not be negative")
)

// Grid geometry of one octave: seven white keys, three columns each
const (
	ColumnsPerOctave = 21
	Rows             = 2
)

// Semitone order of the black and white keys. -1 holds the slot of the
// missing black key between E and F.
var (
	blackIdx = [...]int{1, 3, -1, 6, 8, 10}
	whiteIdx = [...]int{0, 2, 4, 5, 7, 9, 11}
)

// SlotKind distinguishes keys from the gap fillers
type SlotKind int

const (
	SlotWhite SlotKind = iota
	SlotBlack
	SlotFiller
)

func (k SlotKind) String() string {
	switch k {
	case SlotWhite:
		return "white"
	case SlotBlack:
		return "black"
	default:
		return "filler"
	}
}

// Slot is a position in the keyboard grid. Fillers have no key.
type Slot struct {
	Kind    SlotKind
	Key     Key
	Column  int
	RowSpan int
	ColSpan int
}

// IsKey reports whether the slot holds a playable key
func (s Slot) IsKey() bool { return s.Kind != SlotFiller }

// Layout is the computed grid for a keyboard
type Layout struct {
	Octaves     int
	OctaveStart int
	Slots       []Slot // generation order: per octave keys then fillers, trailing key last
}

// NewLayout computes the slots for a keyboard of the given size
func NewLayout(octaves, octaveStart int) (Layout, error) {
	if octaves < 1 {
		return Layout{}, ErrInvalidOctaves
	}
	if octaveStart < 0 {
		return Layout{}, ErrInvalidOctaveStart
	}

	l := Layout{Octaves: octaves, OctaveStart: octaveStart}
	for octave := 0; octave < octaves; octave++ {
		offset := octave * ColumnsPerOctave
		for k := 0; k < SemitonesPerOctave; k++ {
			key := Key(k + (octaveStart+octave)*SemitonesPerOctave)
			if key.IsBlack() {
				l.Slots = append(l.Slots, Slot{
					Kind:    SlotBlack,
					Key:     key,
					Column:  indexOf(blackIdx[:], k)*3 + 2 + offset,
					RowSpan: 1,
					ColSpan: 2,
				})
			} else {
				l.Slots = append(l.Slots, Slot{
					Kind:    SlotWhite,
					Key:     key,
					Column:  indexOf(whiteIdx[:], k)*3 + offset,
					RowSpan: 2,
					ColSpan: 3,
				})
			}
		}

		// E-F and B-C have no black key between them
		l.Slots = append(l.Slots,
			Slot{Kind: SlotFiller, Key: -1, Column: offset + 8, RowSpan: 1, ColSpan: 2},
			Slot{Kind: SlotFiller, Key: -1, Column: offset + 20, RowSpan: 1, ColSpan: 2},
		)
	}

	l.Slots = append(l.Slots, Slot{
		Kind:    SlotWhite,
		Key:     Key((octaveStart + octaves) * SemitonesPerOctave),
		Column:  octaves * ColumnsPerOctave,
		RowSpan: 2,
		ColSpan: 3,
	})
	return l, nil
}

// Columns returns the number of grid columns the layout occupies
func (l Layout) Columns() int {
	return l.Octaves*ColumnsPerOctave + 3
}

// Keys returns the playable keys in ascending order
func (l Layout) Keys() []Key {
	out := make([]Key, 0, l.Octaves*SemitonesPerOctave+1)
	for _, s := range l.Slots {
		if s.IsKey() {
			out = append(out, s.Key)
		}
	}
	// slots are generated in index order already
	return out
}

// First returns the lowest key on the keyboard
func (l Layout) First() Key {
	return Key(l.OctaveStart * SemitonesPerOctave)
}

// Last returns the trailing key that closes the keyboard
func (l Layout) Last() Key {
	return Key((l.OctaveStart + l.Octaves) * SemitonesPerOctave)
}

// Contains reports whether the key is part of the layout
func (l Layout) Contains(k Key) bool {
	return k >= l.First() && k <= l.Last()
}

// Stacked returns the slots in draw order: fillers, white keys, black keys.
// Later slots are drawn on top of earlier ones.
func (l Layout) Stacked() []Slot {
	out := make([]Slot, 0, len(l.Slots))
	for _, kind := range []SlotKind{SlotFiller, SlotWhite, SlotBlack} {
		for _, s := range l.Slots {
			if s.Kind == kind {
				out = append(out, s)
			}
		}
	}
	return out
}

// ColumnStretch returns the layout weight of a grid column. Black key
// columns stay narrower than the white key flanks.
func ColumnStretch(col int) int {
	if col%3 == 1 {
		return 4
	}
	return 3
}

// RowStretch returns the layout weight of a grid row
func RowStretch(row int) int {
	if row == 0 {
		return 2
	}
	return 1
}

func indexOf(values []int, v int) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}
