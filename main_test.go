package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PixPMusic/gopher-piano/internal/config"
	"github.com/PixPMusic/gopher-piano/internal/keys"
)

func TestPrintLayout(t *testing.T) {
	layout, err := keys.NewLayout(2, 3)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := printLayout(&buf, layout); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(layout.Slots) {
		t.Fatalf("printed %d lines, want %d", len(lines), len(layout.Slots))
	}
	if !strings.HasPrefix(lines[0], "filler") {
		t.Errorf("first line %q, want a filler", lines[0])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "black") {
		t.Errorf("last line %q, want a black key", lines[len(lines)-1])
	}
	if !strings.Contains(buf.String(), "C4/si") {
		t.Error("C4 printed without its sample")
	}
	if !strings.Contains(buf.String(), " 60 C5/si ") {
		t.Errorf("trailing key missing from\n%s", buf.String())
	}
}

func TestApplyFlags(t *testing.T) {
	if err := rootCmd.ParseFlags([]string{"--octaves", "3", "--midi-in", "Keystation", "--volume", "250"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.OctaveStart = 4
	applyFlags(rootCmd, cfg)

	if cfg.Octaves != 3 || cfg.MIDIInPort != "Keystation" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.OctaveStart != 4 {
		t.Errorf("unset flag overrode config: start = %d", cfg.OctaveStart)
	}
	if cfg.Volume != 50 {
		t.Errorf("out-of-range volume kept: %d", cfg.Volume)
	}
}
