package router

import "github.com/PixPMusic/gopher-piano/internal/audio"

var bindingTable = []struct {
	sample audio.SampleID
	notes  []string
}{
	{audio.SampleSi, []string{"C4", "C3", "C5", "G#3"}},
	{audio.SampleFa, []string{"D4", "D3", "C#3", "D#4"}},
	{audio.SampleLja, []string{"E4", "E3", "F#3", "G#4"}},
	{audio.SampleMi, []string{"F4", "F3", "D#3", "A#4"}},
	{audio.SampleDo, []string{"G4", "G3", "A#3"}},
	{audio.SampleRe, []string{"A4", "A3", "F#4"}},
	{audio.SampleSol, []string{"B4", "B3", "C#4"}},
}

// bindings maps note names to their sample
var bindings = func() map[string]audio.SampleID {
	m := make(map[string]audio.SampleID)
	for _, row := range bindingTable {
		for _, note := range row.notes {
			m[note] = row.sample
		}
	}
	return m
}()

// SampleFor returns the sample bound to a note name such as "D#4"
func SampleFor(noteName string) (audio.SampleID, bool) {
	id, ok := bindings[noteName]
	return id, ok
}

// BoundNotes returns the note names bound to a sample, in table order
func BoundNotes(id audio.SampleID) []string {
	for _, row := range bindingTable {
		if row.sample == id {
			return append([]string(nil), row.notes...)
		}
	}
	return nil
}
