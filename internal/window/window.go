package window

import (
	"fmt"
	"log"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/PixPMusic/gopher-piano/internal/audio"
	"github.com/PixPMusic/gopher-piano/internal/config"
	"github.com/PixPMusic/gopher-piano/internal/keys"
	"github.com/PixPMusic/gopher-piano/internal/midi"
	"github.com/PixPMusic/gopher-piano/internal/router"
)

const noPort = "(None)"

// MainWindow manages the keyboard window
type MainWindow struct {
	window      fyne.Window
	app         fyne.App
	cfg         *config.Config
	bank        *audio.Bank
	router      *router.Router
	midiManager *midi.Manager
	keyboard    *Keyboard

	// Computer keyboard bindings and the keys currently held through them
	qwerty map[string]int
	held   map[int]bool

	volumeSlider *widget.Slider
	muteCheck    *widget.Check
	midiSelect   *widget.Select

	// MIDI input listener
	midiStop func()
}

// NewMainWindow creates the keyboard window. Key events from the mouse,
// computer keyboard and MIDI all go through r.
func NewMainWindow(app fyne.App, cfg *config.Config, layout keys.Layout, bank *audio.Bank, r *router.Router, midiManager *midi.Manager) *MainWindow {
	win := app.NewWindow("GopherPiano")

	mw := &MainWindow{
		window:      win,
		app:         app,
		cfg:         cfg,
		bank:        bank,
		router:      r,
		midiManager: midiManager,
		held:        make(map[int]bool),
	}

	mw.keyboard = NewKeyboard(layout, r.OnTrigger)
	r.Subscribe(func(ev router.Event) {
		mw.keyboard.SetPressed(ev.Key.Index(), ev.Pressed)
	})

	if cfg.QwertyEnabled {
		mw.qwerty = keys.QwertyBindings(layout.First(), layout)
	}

	mw.setupUI()
	mw.setupQwerty()

	// Key up events are lost while another window has focus
	app.Lifecycle().SetOnExitedForeground(mw.releaseHeld)

	win.SetCloseIntercept(func() {
		mw.Quit()
	})

	return mw
}

// Show displays the window
func (mw *MainWindow) Show() {
	mw.window.Show()
}

// Keyboard returns the keyboard widget
func (mw *MainWindow) Keyboard() *Keyboard {
	return mw.keyboard
}

// SetMuted updates the bank and the mute check box
func (mw *MainWindow) SetMuted(muted bool) {
	mw.bank.SetMuted(muted)
	mw.cfg.Muted = muted
	if mw.muteCheck != nil && mw.muteCheck.Checked != muted {
		mw.muteCheck.SetChecked(muted)
	}
}

// Quit stops MIDI input, saves the config and exits the app
func (mw *MainWindow) Quit() {
	mw.StopMIDIListener()
	if err := mw.cfg.Save(); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	mw.app.Quit()
}

func (mw *MainWindow) setupUI() {
	layout := mw.keyboard.Layout()
	rangeLabel := widget.NewLabel(fmt.Sprintf("%s – %s", layout.First().Name(), layout.Last().Name()))
	rangeLabel.TextStyle = fyne.TextStyle{Bold: true}

	mw.volumeSlider = widget.NewSlider(0, 100)
	mw.volumeSlider.Step = 1
	mw.volumeSlider.SetValue(float64(mw.cfg.Volume))
	mw.bank.SetVolume(mw.cfg.Volume)
	mw.volumeSlider.OnChanged = func(v float64) {
		mw.cfg.Volume = int(v)
		mw.bank.SetVolume(int(v))
	}

	mw.muteCheck = widget.NewCheck("Mute", func(checked bool) {
		mw.SetMuted(checked)
	})
	mw.muteCheck.SetChecked(mw.cfg.Muted)

	mw.midiSelect = widget.NewSelect(mw.midiInOptions(), func(selected string) {
		if selected == noPort {
			selected = ""
		}
		if selected == mw.cfg.MIDIInPort && mw.midiStop != nil {
			return
		}
		mw.cfg.MIDIInPort = selected
		mw.StartMIDIListener()
	})
	mw.midiSelect.PlaceHolder = "MIDI Input"

	refreshBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		mw.midiSelect.Options = mw.midiInOptions()
		mw.midiSelect.Refresh()
	})

	volumeRow := container.NewBorder(nil, nil, widget.NewIcon(theme.VolumeUpIcon()), nil, mw.volumeSlider)
	toolbar := container.NewBorder(nil, nil,
		rangeLabel,
		container.NewHBox(mw.muteCheck, mw.midiSelect, refreshBtn),
		volumeRow,
	)

	mw.window.SetContent(container.NewBorder(
		container.NewVBox(toolbar, widget.NewSeparator()),
		nil, nil, nil,
		mw.keyboard,
	))
}

func (mw *MainWindow) midiInOptions() []string {
	options := []string{noPort}
	if mw.midiManager != nil {
		options = append(options, mw.midiManager.ListInPorts()...)
	}
	return options
}

// setupQwerty routes the bound computer keys to the router. Auto-repeat is
// swallowed so a held key presses once.
func (mw *MainWindow) setupQwerty() {
	desk, ok := mw.window.Canvas().(desktop.Canvas)
	if !ok || len(mw.qwerty) == 0 {
		return
	}
	desk.SetOnKeyDown(func(ev *fyne.KeyEvent) {
		mw.qwertyKey(ev.Name, true)
	})
	desk.SetOnKeyUp(func(ev *fyne.KeyEvent) {
		mw.qwertyKey(ev.Name, false)
	})
}

func (mw *MainWindow) qwertyKey(name fyne.KeyName, pressed bool) {
	key, ok := mw.qwerty[string(name)]
	if !ok || mw.held[key] == pressed {
		return
	}
	mw.held[key] = pressed
	mw.router.OnTrigger(key, pressed)
}

// releaseHeld releases every key still held through the computer keyboard
func (mw *MainWindow) releaseHeld() {
	var held []int
	for key, down := range mw.held {
		if down {
			held = append(held, key)
		}
	}
	sort.Ints(held)
	for _, key := range held {
		mw.held[key] = false
		mw.router.OnTrigger(key, false)
	}
}

// ============ MIDI ============

// InitializeMIDI starts the configured input listener and thru output
func (mw *MainWindow) InitializeMIDI() {
	if mw.midiManager == nil {
		return
	}

	if mw.cfg.MIDIOutPort != "" {
		thru, err := mw.midiManager.OpenThru(mw.cfg.MIDIOutPort)
		if err != nil {
			log.Printf("Failed to open MIDI thru on %s: %v", mw.cfg.MIDIOutPort, err)
		} else {
			mw.router.Subscribe(func(ev router.Event) {
				thru(ev.Key.Index(), ev.Pressed)
			})
			log.Printf("Forwarding keys to %s", mw.cfg.MIDIOutPort)
		}
	}

	// Selecting a listed port starts the listener through the select callback
	if mw.cfg.MIDIInPort != "" {
		mw.midiSelect.SetSelected(mw.cfg.MIDIInPort)
	}
	if mw.midiStop == nil {
		mw.StartMIDIListener()
	}
}

// StartMIDIListener listens on the configured input port. Events are handed
// to the UI goroutine before routing.
func (mw *MainWindow) StartMIDIListener() {
	mw.StopMIDIListener()

	port := mw.cfg.MIDIInPort
	if port == "" || mw.midiManager == nil {
		return
	}

	stop, err := mw.midiManager.StartListening(port, func(key int, pressed bool) {
		fyne.Do(func() {
			mw.router.OnTrigger(key, pressed)
		})
	})
	if err != nil {
		log.Printf("Failed to start listener for %s: %v", port, err)
		return
	}

	mw.midiStop = stop
	log.Printf("Started listening on %s", port)
}

// StopMIDIListener stops the MIDI input listener
func (mw *MainWindow) StopMIDIListener() {
	if mw.midiStop != nil {
		mw.midiStop()
		mw.midiStop = nil
	}
}
