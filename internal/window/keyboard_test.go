package window

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/PixPMusic/gopher-piano/internal/keys"
)

type triggerEvent struct {
	key     int
	pressed bool
}

func newTestKeyboard(t *testing.T, octaves, start int) (*Keyboard, *[]triggerEvent) {
	t.Helper()
	l, err := keys.NewLayout(octaves, start)
	if err != nil {
		t.Fatal(err)
	}
	var events []triggerEvent
	k := NewKeyboard(l, func(key int, pressed bool) {
		events = append(events, triggerEvent{key, pressed})
	})
	return k, &events
}

func TestKeyboardBuildsEveryKey(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	k, _ := newTestKeyboard(t, 2, 3)
	if len(k.buttons) != 25 {
		t.Fatalf("got %d key buttons, want 25", len(k.buttons))
	}
	for key := 36; key <= 60; key++ {
		if _, ok := k.buttons[key]; !ok {
			t.Errorf("no button for key %d", key)
		}
	}
	if k.buttons[60].minWidth != trailingMinWidth {
		t.Errorf("trailing key min width = %v, want %v", k.buttons[60].minWidth, trailingMinWidth)
	}
	if len(k.content.Objects) != 25+4 {
		t.Errorf("got %d objects, want 29", len(k.content.Objects))
	}
}

func TestKeyboardStacking(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	k, _ := newTestKeyboard(t, 2, 3)

	// fillers first, then white keys, black keys on top
	rank := func(obj fyne.CanvasObject) int {
		switch o := obj.(type) {
		case *canvas.Rectangle:
			return 0
		case *keyButton:
			if o.key.IsBlack() {
				return 2
			}
			return 1
		}
		t.Fatalf("unexpected object %T", obj)
		return -1
	}
	objects := k.content.Objects
	for i := 1; i < len(objects); i++ {
		if rank(objects[i]) < rank(objects[i-1]) {
			t.Fatalf("object %d drawn below object %d", i, i-1)
		}
	}
}

func TestMouseTriggersKey(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	k, events := newTestKeyboard(t, 2, 3)
	button := k.buttons[51]

	button.MouseDown(nil)
	if !k.IsPressed(51) {
		t.Error("key not drawn pressed after mouse down")
	}
	button.MouseUp(nil)
	if k.IsPressed(51) {
		t.Error("key still drawn pressed after mouse up")
	}

	want := []triggerEvent{{51, true}, {51, false}}
	if len(*events) != len(want) {
		t.Fatalf("events = %v, want %v", *events, want)
	}
	for i := range want {
		if (*events)[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, (*events)[i], want[i])
		}
	}
}

func TestReleaseGoesToPressedKey(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	k, events := newTestKeyboard(t, 2, 3)

	// pressed on C4, let go over D4
	k.buttons[48].MouseDown(nil)
	k.buttons[50].MouseUp(nil)
	k.buttons[48].DragEnd()

	// pressed on E4, let go outside the keyboard
	k.buttons[52].MouseDown(nil)
	k.buttons[52].DragEnd()
	k.buttons[52].MouseUp(nil)

	want := []triggerEvent{{48, true}, {48, false}, {52, true}, {52, false}}
	if len(*events) != len(want) {
		t.Fatalf("events = %v, want %v", *events, want)
	}
	for i := range want {
		if (*events)[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, (*events)[i], want[i])
		}
	}
	for _, key := range []int{48, 50, 52} {
		if k.IsPressed(key) {
			t.Errorf("key %d still drawn pressed", key)
		}
	}
}

func TestSetPressedDoesNotTrigger(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	k, events := newTestKeyboard(t, 1, 4)
	k.SetPressed(49, true)
	k.SetPressed(200, true)

	if !k.IsPressed(49) || k.IsPressed(200) {
		t.Error("SetPressed did not highlight the right key")
	}
	if len(*events) != 0 {
		t.Errorf("SetPressed emitted %v", *events)
	}
}

func TestKeyColors(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	k, _ := newTestKeyboard(t, 1, 3)
	white, black := k.buttons[36], k.buttons[37]

	if white.fillColor() != whiteKeyColor || black.fillColor() != blackKeyColor {
		t.Error("unexpected idle colors")
	}
	white.setPressed(true)
	black.setPressed(true)
	if white.fillColor() != whiteKeyPressedColor || black.fillColor() != blackKeyPressedColor {
		t.Error("unexpected pressed colors")
	}
}

func TestBlackKeysOverlapWhiteNeighbours(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	k, _ := newTestKeyboard(t, 1, 3)
	w := test.NewWindow(k)
	defer w.Close()
	w.Resize(fyne.NewSize(800, 300))
	k.content.Resize(fyne.NewSize(800, 300))

	c, cs, d := k.buttons[36], k.buttons[37], k.buttons[38]
	if cs.Position().X <= c.Position().X || cs.Position().X >= d.Position().X {
		t.Errorf("C# starts at %v, want inside C (%v) before D (%v)", cs.Position().X, c.Position().X, d.Position().X)
	}
	if end := cs.Position().X + cs.Size().Width; end <= d.Position().X {
		t.Errorf("C# ends at %v, want past start of D (%v)", end, d.Position().X)
	}
	if cs.Size().Height >= c.Size().Height {
		t.Errorf("black key height %v not below white key height %v", cs.Size().Height, c.Size().Height)
	}
}
