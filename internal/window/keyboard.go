package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-piano/internal/keys"
)

// Keyboard renders a keys.Layout as a grid of pressable keys
type Keyboard struct {
	widget.BaseWidget
	layout  keys.Layout
	buttons map[int]*keyButton
	content *fyne.Container
}

// NewKeyboard builds the key widgets for l. onTrigger receives every press
// and release made with the mouse.
func NewKeyboard(l keys.Layout, onTrigger func(key int, pressed bool)) *Keyboard {
	k := &Keyboard{
		layout:  l,
		buttons: make(map[int]*keyButton),
	}

	grid := newSpanGrid(keys.Rows, l.Columns(), keys.RowStretch, keys.ColumnStretch)
	objects := make([]fyne.CanvasObject, 0, len(l.Slots))

	// Stacked order puts fillers at the bottom and black keys on top
	for _, slot := range l.Stacked() {
		var obj fyne.CanvasObject
		if slot.IsKey() {
			button := newKeyButton(slot.Key, onTrigger)
			if slot.Key == l.Last() {
				button.minWidth = trailingMinWidth
			}
			k.buttons[slot.Key.Index()] = button
			obj = button
		} else {
			filler := canvas.NewRectangle(theme.BackgroundColor())
			filler.SetMinSize(fyne.NewSize(keyMinWidth, 1))
			obj = filler
		}
		grid.place(obj, cell{row: 0, col: slot.Column, rowSpan: slot.RowSpan, colSpan: slot.ColSpan})
		objects = append(objects, obj)
	}

	k.content = container.New(grid, objects...)
	k.ExtendBaseWidget(k)
	return k
}

func (k *Keyboard) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(k.content)
}

// Layout returns the layout the keyboard was built from
func (k *Keyboard) Layout() keys.Layout {
	return k.layout
}

// SetPressed highlights a key without emitting an event. Keys outside the
// keyboard are ignored.
func (k *Keyboard) SetPressed(key int, pressed bool) {
	if b, ok := k.buttons[key]; ok {
		b.setPressed(pressed)
	}
}

// IsPressed reports whether a key is drawn pressed
func (k *Keyboard) IsPressed(key int) bool {
	b, ok := k.buttons[key]
	return ok && b.pressed
}
