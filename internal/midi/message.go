package midi

import "gitlab.com/gomidi/midi/v2"

// HandleMessage parses a MIDI message into a key event. The note number is
// used as the key index. Returns handled=false for anything but notes.
func HandleMessage(msg midi.Message) (key int, pressed bool, handled bool) {
	var channel, note, velocity uint8

	switch {
	case msg.GetNoteStart(&channel, &note, &velocity):
		return int(note), true, true
	case msg.GetNoteEnd(&channel, &note):
		// Note Off, or Note On with velocity 0
		return int(note), false, true
	}

	return 0, false, false
}

// KeyMessage builds the Note On/Off message for a key event
func KeyMessage(key int, pressed bool) (midi.Message, bool) {
	if key < 0 || key > 127 {
		return nil, false
	}
	if pressed {
		return midi.NoteOn(0, uint8(key), ThruVelocity), true
	}
	return midi.NoteOff(0, uint8(key)), true
}
