package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

// Callbacks for tray menu actions
type Callbacks struct {
	OnOpen func()
	OnMute func(muted bool)
	OnQuit func()
}

// Setup initializes the system tray using Fyne's built-in support.
// Returns false when the app has no desktop tray.
func Setup(app fyne.App, muted bool, callbacks Callbacks) bool {
	desk, ok := app.(desktop.App)
	if !ok {
		return false
	}

	desk.SetSystemTrayMenu(NewMenu(muted, callbacks))
	desk.SetSystemTrayIcon(theme.MediaPlayIcon())
	return true
}

// NewMenu builds the tray menu
func NewMenu(muted bool, callbacks Callbacks) *fyne.Menu {
	openItem := fyne.NewMenuItem("Show Keyboard", func() {
		if callbacks.OnOpen != nil {
			callbacks.OnOpen()
		}
	})

	muteItem := fyne.NewMenuItem("Mute", nil)
	muteItem.Checked = muted

	quitItem := fyne.NewMenuItem("Quit", func() {
		if callbacks.OnQuit != nil {
			callbacks.OnQuit()
		}
	})
	quitItem.IsQuit = true

	menu := fyne.NewMenu("GopherPiano",
		openItem,
		fyne.NewMenuItemSeparator(),
		muteItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	// Set the action after menu is created so we can refresh it
	muteItem.Action = func() {
		muteItem.Checked = !muteItem.Checked
		if callbacks.OnMute != nil {
			callbacks.OnMute(muteItem.Checked)
		}
		menu.Refresh()
	}

	return menu
}
