package audio

import (
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"
)

// DefaultSampleRate matches the rate of the bundled samples
const DefaultSampleRate = 44100

// OtoOutput plays voices through the system audio device
type OtoOutput struct {
	context    *oto.Context
	sampleRate int
}

// NewOtoOutput creates the audio context. Only one may exist per process.
func NewOtoOutput(sampleRate int) (*OtoOutput, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready

	return &OtoOutput{context: context, sampleRate: sampleRate}, nil
}

// NewVoice implements Output
func (o *OtoOutput) NewVoice(src io.ReadSeeker) Voice {
	return o.context.NewPlayer(src)
}

// SampleRate implements Output
func (o *OtoOutput) SampleRate() int {
	return o.sampleRate
}

