package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/PixPMusic/gopher-piano/internal/audio"
	"github.com/PixPMusic/gopher-piano/internal/config"
	"github.com/PixPMusic/gopher-piano/internal/keys"
	"github.com/PixPMusic/gopher-piano/internal/midi"
	"github.com/PixPMusic/gopher-piano/internal/router"
	"github.com/PixPMusic/gopher-piano/internal/tray"
	"github.com/PixPMusic/gopher-piano/internal/window"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
)

var version = "dev"

var (
	octaves     int
	octaveStart int
	volume      int
	soundsDir   string
	midiIn      string
	midiOut     string
	saveFlags   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gopher-piano",
	Short: "Virtual piano keyboard that plays recorded samples",
	Long: `gopher-piano opens a piano keyboard window. Every key press is printed
to stdout and bound notes play one of seven recorded samples.

Keys can be played with the mouse, the computer keyboard (A W S E D F ...)
or a MIDI controller.

Examples:
  gopher-piano
  gopher-piano --octaves 3 --start 2
  gopher-piano --midi-in "Keystation 49" --save
  gopher-piano layout
  gopher-piano ports`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runKeyboard,
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the key grid in draw order",
	Args:  cobra.NoArgs,
	RunE:  runLayout,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input and output ports",
	Args:  cobra.NoArgs,
	RunE:  runPorts,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&octaves, "octaves", config.DefaultOctaves, "Number of octaves on the keyboard")
	rootCmd.PersistentFlags().IntVar(&octaveStart, "start", config.DefaultOctaveStart, "Octave of the lowest key")

	rootCmd.Flags().IntVar(&volume, "volume", audio.DefaultVolume, "Sample volume in percent")
	rootCmd.Flags().StringVar(&soundsDir, "sounds", config.DefaultSoundsDir, "Directory holding the sample files")
	rootCmd.Flags().StringVar(&midiIn, "midi-in", "", "MIDI input port to play the keyboard from")
	rootCmd.Flags().StringVar(&midiOut, "midi-out", "", "MIDI output port to forward key events to")
	rootCmd.Flags().BoolVar(&saveFlags, "save", false, "Save the given flags to the config file")

	rootCmd.AddCommand(layoutCmd, portsCmd)
}

// loadConfig reads the config file and applies any flags set on cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("octaves") {
		cfg.Octaves = octaves
	}
	if flags.Changed("start") {
		cfg.OctaveStart = octaveStart
	}
	if flags.Changed("volume") {
		cfg.Volume = volume
	}
	if flags.Changed("sounds") {
		cfg.SoundsDir = soundsDir
	}
	if flags.Changed("midi-in") {
		cfg.MIDIInPort = midiIn
	}
	if flags.Changed("midi-out") {
		cfg.MIDIOutPort = midiOut
	}
	cfg.Validate()
}

func runKeyboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	layout, err := keys.NewLayout(cfg.Octaves, cfg.OctaveStart)
	if err != nil {
		return err
	}

	output, err := audio.NewOtoOutput(audio.DefaultSampleRate)
	if err != nil {
		return err
	}
	bank := audio.NewBank(output)
	defer bank.Close()
	bank.LoadDir(cfg.SoundsDir)

	r := router.New(cmd.OutOrStdout(), bank)

	midiManager := midi.NewManager()
	defer midiManager.Close()

	fyneApp := app.NewWithID("com.pixpmusic.gopherpiano")

	mainWindow := window.NewMainWindow(fyneApp, cfg, layout, bank, r, midiManager)

	tray.Setup(fyneApp, cfg.Muted, tray.Callbacks{
		OnOpen: mainWindow.Show,
		OnMute: mainWindow.SetMuted,
		OnQuit: mainWindow.Quit,
	})

	mainWindow.InitializeMIDI()

	if saveFlags || !cfg.FirstLaunchCompleted {
		cfg.FirstLaunchCompleted = true
		if err := cfg.Save(); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	}

	log.Printf("Keyboard %s: %d octaves, %s to %s", cfg.ID, cfg.Octaves, layout.First(), layout.Last())
	mainWindow.Show()

	// Run the Fyne app (this blocks until app.Quit is called)
	fyneApp.Run()
	return nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	layout, err := keys.NewLayout(cfg.Octaves, cfg.OctaveStart)
	if err != nil {
		return err
	}
	return printLayout(cmd.OutOrStdout(), layout)
}

// printLayout writes one line per slot: kind index name column rowSpan colSpan
func printLayout(w io.Writer, layout keys.Layout) error {
	for _, slot := range layout.Stacked() {
		index, name := "-", "-"
		if slot.IsKey() {
			index, name = fmt.Sprint(slot.Key.Index()), slot.Key.Name()
			if sample, ok := router.SampleFor(name); ok {
				name += "/" + string(sample)
			}
		}
		if _, err := fmt.Fprintf(w, "%-6s %3s %-8s %3d %d %d\n",
			slot.Kind, index, name, slot.Column, slot.RowSpan, slot.ColSpan); err != nil {
			return err
		}
	}
	return nil
}

func runPorts(cmd *cobra.Command, args []string) error {
	midiManager := midi.NewManager()
	defer midiManager.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Inputs:")
	for _, name := range midiManager.ListInPorts() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintln(out, "Outputs:")
	for _, name := range midiManager.ListOutPorts() {
		fmt.Fprintf(out, "  %s\n", name)
	}
	return nil
}
