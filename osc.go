package tonegen

import (
	"fmt"
	"math"
	"strings"
)

const twoPi = 2 * math.Pi

type Waveform int32

const (
	Sine Waveform = iota
	Square
	Saw
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Saw:
		return "saw"
	}
	return fmt.Sprintf("Waveform(%d)", int32(w))
}

func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(s) {
	case "sine", "sin":
		return Sine, nil
	case "square", "sqr":
		return Square, nil
	case "saw", "sawtooth":
		return Saw, nil
	}
	return 0, fmt.Errorf("unknown waveform %q", s)
}

// Osc is a phase accumulator.  Phase is in radians and stays in [0, 2π).
type Osc struct {
	Params Params
	phase  float64
}

func (o *Osc) InitAudio(p Params) {
	o.Params = p
	o.phase = 0
}

func (o *Osc) Reset()         { o.phase = 0 }
func (o *Osc) Phase() float64 { return o.phase }

// Next returns the sample at the current phase and then advances it.
// Changing freq between calls changes only the rate of advance.
func (o *Osc) Next(freq, sampleRate float64, w Waveform) float64 {
	var x float64
	switch w {
	case Sine:
		x = math.Sin(o.phase)
	case Square:
		if math.Sin(o.phase) > 0 {
			x = 1
		} else {
			x = -1
		}
	case Saw:
		x = 2*(o.phase/twoPi) - 1
	default:
		x = 0
	}

	// Non-positive, NaN and infinite increments hold the phase.
	if inc := twoPi * freq / sampleRate; inc > 0 && !math.IsInf(inc, 0) {
		o.phase += inc
		if o.phase >= twoPi {
			o.phase -= twoPi
			if o.phase >= twoPi {
				o.phase = math.Mod(o.phase, twoPi)
			}
		}
	}
	return x
}
