package router

import (
	"fmt"
	"io"

	"github.com/PixPMusic/gopher-piano/internal/audio"
	"github.com/PixPMusic/gopher-piano/internal/keys"
)

// Player plays a bound sample from its start
type Player interface {
	Play(id audio.SampleID)
}

// Event is a routed key press or release
type Event struct {
	Key     keys.Key
	Pressed bool
	Sample  audio.SampleID // empty when nothing was played
}

// State returns "pressed" or "released"
func (e Event) State() string {
	if e.Pressed {
		return "pressed"
	}
	return "released"
}

// Router turns key events into console output and sample playback. It is
// driven from the UI goroutine only.
type Router struct {
	out       io.Writer
	player    Player
	listeners []func(Event)
}

// New creates a router reporting to out and playing through player
func New(out io.Writer, player Player) *Router {
	return &Router{out: out, player: player}
}

// Subscribe registers fn to be called after every routed event
func (r *Router) Subscribe(fn func(Event)) {
	r.listeners = append(r.listeners, fn)
}

// OnTrigger handles a key press or release
func (r *Router) OnTrigger(key int, pressed bool) {
	ev := Event{Key: keys.Key(key), Pressed: pressed}
	name := ev.Key.Name()
	fmt.Fprintf(r.out, "Key %d (%s) %s\n", key, name, ev.State())

	if pressed {
		if sample, ok := SampleFor(name); ok {
			r.player.Play(sample)
			ev.Sample = sample
		}
	}

	for _, fn := range r.listeners {
		fn(ev)
	}
}
