package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"
)

type fakeVoice struct {
	src    io.ReadSeeker
	calls  []string
	volume float64
	closed bool
}

func (v *fakeVoice) Play()  { v.calls = append(v.calls, "play") }
func (v *fakeVoice) Pause() { v.calls = append(v.calls, "pause") }
func (v *fakeVoice) Seek(offset int64, whence int) (int64, error) {
	v.calls = append(v.calls, "seek")
	return v.src.Seek(offset, whence)
}
func (v *fakeVoice) SetVolume(volume float64) { v.volume = volume }
func (v *fakeVoice) Close() error {
	v.closed = true
	return nil
}

type fakeOutput struct {
	voices []*fakeVoice
}

func (o *fakeOutput) NewVoice(src io.ReadSeeker) Voice {
	v := &fakeVoice{src: src}
	o.voices = append(o.voices, v)
	return v
}

func (o *fakeOutput) SampleRate() int { return DefaultSampleRate }

func writeTestWAV(t *testing.T, dir, name string, channels int, data []float32) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, DefaultSampleRate, 16, channels, 1)
	buf := &goaudio.Float32Buffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: DefaultSampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	bank := NewBank(&fakeOutput{})
	err := bank.Load(SampleSi, filepath.Join(t.TempDir(), "si.mp3"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load error = %v, want fs.ErrNotExist", err)
	}
	if bank.Loaded(SampleSi) {
		t.Error("missing sample reported as loaded")
	}

	// playing an unloaded sample is a no-op
	bank.Play(SampleSi)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "si.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0644); err != nil {
		t.Fatal(err)
	}
	bank := NewBank(&fakeOutput{})
	if err := bank.Load(SampleSi, path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Load error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestPlayRestartsFromStart(t *testing.T) {
	out := &fakeOutput{}
	bank := NewBank(out)
	path := writeTestWAV(t, t.TempDir(), "fa.wav", 2, []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3})

	if err := bank.Load(SampleFa, path); err != nil {
		t.Fatal(err)
	}
	if len(out.voices) != 1 {
		t.Fatalf("got %d voices, want 1", len(out.voices))
	}
	voice := out.voices[0]

	// consume part of the stream as if it had been playing
	if _, err := voice.src.Read(make([]byte, 4)); err != nil {
		t.Fatal(err)
	}

	bank.Play(SampleFa)
	bank.Play(SampleFa)

	want := []string{"pause", "seek", "play", "pause", "seek", "play"}
	if len(voice.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", voice.calls, want)
	}
	for i := range want {
		if voice.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", voice.calls, want)
		}
	}

	pos, err := voice.src.Seek(0, io.SeekCurrent)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 0 {
		t.Errorf("stream position after Play = %d, want 0", pos)
	}
}

func TestSamplesHaveIndependentVoices(t *testing.T) {
	out := &fakeOutput{}
	bank := NewBank(out)
	dir := t.TempDir()

	if err := bank.Load(SampleDo, writeTestWAV(t, dir, "do.wav", 1, []float32{0.1, 0.2, 0.3})); err != nil {
		t.Fatal(err)
	}
	if err := bank.Load(SampleRe, writeTestWAV(t, dir, "re.wav", 1, []float32{0.4, 0.5, 0.6})); err != nil {
		t.Fatal(err)
	}

	bank.Play(SampleDo)
	if len(out.voices[1].calls) != 0 {
		t.Errorf("playing do touched re: %v", out.voices[1].calls)
	}
}

func TestReloadClosesPreviousVoice(t *testing.T) {
	out := &fakeOutput{}
	bank := NewBank(out)
	path := writeTestWAV(t, t.TempDir(), "mi.wav", 1, []float32{0.5})

	for i := 0; i < 2; i++ {
		if err := bank.Load(SampleMi, path); err != nil {
			t.Fatal(err)
		}
	}
	if !out.voices[0].closed {
		t.Error("previous voice not closed on reload")
	}
	if out.voices[1].closed {
		t.Error("current voice closed")
	}
}

func TestVolumeAndMute(t *testing.T) {
	out := &fakeOutput{}
	bank := NewBank(out)
	if err := bank.Load(SampleSol, writeTestWAV(t, t.TempDir(), "sol.wav", 1, []float32{0.5})); err != nil {
		t.Fatal(err)
	}
	voice := out.voices[0]

	if voice.volume != 0.5 {
		t.Errorf("initial volume = %v, want 0.5", voice.volume)
	}

	tests := []struct {
		percent int
		want    float64
	}{
		{80, 0.8},
		{150, 1},
		{-5, 0},
	}
	for _, tt := range tests {
		bank.SetVolume(tt.percent)
		if voice.volume != tt.want {
			t.Errorf("SetVolume(%d): voice volume = %v, want %v", tt.percent, voice.volume, tt.want)
		}
	}

	bank.SetVolume(70)
	bank.SetMuted(true)
	if voice.volume != 0 || !bank.Muted() {
		t.Errorf("muted volume = %v, want 0", voice.volume)
	}
	bank.SetMuted(false)
	if voice.volume != 0.7 || bank.Volume() != 70 {
		t.Errorf("unmuted volume = %v (%d%%), want 0.7", voice.volume, bank.Volume())
	}
}

func TestLoadDirSkipsMissingSamples(t *testing.T) {
	out := &fakeOutput{}
	bank := NewBank(out)
	bank.LoadDir(t.TempDir())

	for id := range DefaultFiles {
		if bank.Loaded(id) {
			t.Errorf("sample %s loaded from empty dir", id)
		}
	}
	if len(out.voices) != 0 {
		t.Errorf("created %d voices, want 0", len(out.voices))
	}
}

func TestCloseReleasesVoices(t *testing.T) {
	out := &fakeOutput{}
	bank := NewBank(out)
	if err := bank.Load(SampleLja, writeTestWAV(t, t.TempDir(), "lja.wav", 1, []float32{0.5})); err != nil {
		t.Fatal(err)
	}
	if err := bank.Close(); err != nil {
		t.Fatal(err)
	}
	if !out.voices[0].closed || bank.Loaded(SampleLja) {
		t.Error("Close did not release the voice")
	}
}

func TestStereo16(t *testing.T) {
	mono := &goaudio.Float32Buffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: DefaultSampleRate},
		Data:           []float32{0.5, -1},
		SourceBitDepth: 24,
	}
	pcm := stereo16(mono)
	if len(pcm) != 8 {
		t.Fatalf("len = %d, want 8", len(pcm))
	}
	frames := []int16{
		int16(binary.LittleEndian.Uint16(pcm[0:])),
		int16(binary.LittleEndian.Uint16(pcm[2:])),
		int16(binary.LittleEndian.Uint16(pcm[4:])),
		int16(binary.LittleEndian.Uint16(pcm[6:])),
	}
	want := []int16{16383, 16383, -32767, -32767}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, frames[i], want[i])
		}
	}

	stereo := &goaudio.Float32Buffer{
		Format: &goaudio.Format{NumChannels: 2, SampleRate: DefaultSampleRate},
		Data:   []float32{0.25, -0.25},
	}
	pcm = stereo16(stereo)
	if l, r := int16(binary.LittleEndian.Uint16(pcm[0:])), int16(binary.LittleEndian.Uint16(pcm[2:])); l != 8191 || r != -8191 {
		t.Errorf("stereo frame = %d/%d, want 8191/-8191", l, r)
	}
}

func TestToInt16Clamps(t *testing.T) {
	tests := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{1.5, 32767},
		{-3, -32767},
	}
	for _, tt := range tests {
		if got := toInt16(tt.in); got != tt.want {
			t.Errorf("toInt16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
