package window

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-piano/internal/keys"
)

var (
	whiteKeyColor        = color.White
	whiteKeyPressedColor = color.Gray{Y: 0xd0}
	blackKeyColor        = color.Black
	blackKeyPressedColor = color.RGBA{50, 50, 50, 255}
	keyBorderColor       = color.Gray{Y: 0x60}
)

// Minimum key sizes in device-independent pixels
const (
	keyMinWidth      = 25
	trailingMinWidth = 32
	whiteMinHeight   = 120
	blackMinHeight   = 80
)

// ============ KEY BUTTON WIDGET ============

// keyButton is a piano key that reports presses on mouse down. The release
// always goes to the key that took the press, even when the pointer is let go
// over another key or outside the keyboard.
type keyButton struct {
	widget.BaseWidget
	key       keys.Key
	minWidth  float32
	pressed   bool
	mouseHeld bool
	onTrigger func(key int, pressed bool)
}

func newKeyButton(key keys.Key, onTrigger func(int, bool)) *keyButton {
	b := &keyButton{key: key, minWidth: keyMinWidth, onTrigger: onTrigger}
	b.ExtendBaseWidget(b)
	return b
}

func (b *keyButton) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(whiteKeyColor)
	rect.StrokeColor = keyBorderColor
	rect.StrokeWidth = 1
	rect.CornerRadius = 2

	r := &keyRenderer{button: b, rect: rect, objects: []fyne.CanvasObject{rect}}
	if !b.key.IsBlack() && b.key.NoteIndex() == 0 {
		r.label = noteLabel(b.key.Name(), keyBorderColor)
		r.objects = append(r.objects, r.label)
	}
	r.Refresh()
	return r
}

func (b *keyButton) MouseDown(_ *desktop.MouseEvent) {
	b.mouseHeld = true
	b.trigger(true)
}

// MouseUp is delivered to whatever is under the pointer, so keys that did
// not take the press ignore it
func (b *keyButton) MouseUp(_ *desktop.MouseEvent) {
	b.release()
}

func (b *keyButton) Dragged(_ *fyne.DragEvent) {}

// DragEnd reaches the pressed key wherever the pointer ends up
func (b *keyButton) DragEnd() {
	b.release()
}

func (b *keyButton) release() {
	if !b.mouseHeld {
		return
	}
	b.mouseHeld = false
	b.trigger(false)
}

func (b *keyButton) trigger(pressed bool) {
	b.setPressed(pressed)
	if b.onTrigger != nil {
		b.onTrigger(b.key.Index(), pressed)
	}
}

// setPressed changes the drawn state without emitting an event
func (b *keyButton) setPressed(pressed bool) {
	if b.pressed == pressed {
		return
	}
	b.pressed = pressed
	b.Refresh()
}

func (b *keyButton) fillColor() color.Color {
	switch {
	case b.key.IsBlack() && b.pressed:
		return blackKeyPressedColor
	case b.key.IsBlack():
		return blackKeyColor
	case b.pressed:
		return whiteKeyPressedColor
	}
	return whiteKeyColor
}

type keyRenderer struct {
	button  *keyButton
	rect    *canvas.Rectangle
	label   *canvas.Image
	objects []fyne.CanvasObject
}

func (r *keyRenderer) Layout(size fyne.Size) {
	r.rect.Resize(size)
	if r.label != nil {
		ls := r.label.MinSize()
		r.label.Resize(ls)
		r.label.Move(fyne.NewPos((size.Width-ls.Width)/2, size.Height-ls.Height-4))
	}
}

func (r *keyRenderer) MinSize() fyne.Size {
	if r.button.key.IsBlack() {
		return fyne.NewSize(r.button.minWidth, blackMinHeight)
	}
	return fyne.NewSize(r.button.minWidth, whiteMinHeight)
}

func (r *keyRenderer) Refresh() {
	r.rect.FillColor = r.button.fillColor()
	r.rect.Refresh()
}

func (r *keyRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *keyRenderer) Destroy() {}
