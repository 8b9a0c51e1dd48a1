package tonegen

import (
	"math"
	"sync/atomic"
)

// Control ranges for frequency (Hz) and volume.
const (
	MinFrequency, MaxFrequency = 100.0, 1000.0
	MinVolume, MaxVolume       = 0.0, 1.0
)

// atomicFloat stores a float64 as its bits so a reader never sees a torn value.
type atomicFloat struct{ bits atomic.Uint64 }

func (f *atomicFloat) Load() float64   { return math.Float64frombits(f.bits.Load()) }
func (f *atomicFloat) Store(x float64) { f.bits.Store(math.Float64bits(x)) }

// Controls is the parameter surface shared between the control side, which
// writes, and the render side, which reads.  Every field is an independent
// atomic; nothing here blocks.
type Controls struct {
	freq, volume                    atomicFloat
	attack, decay, sustain, release atomicFloat
	waveform                        atomic.Int32
	playing                         atomic.Bool

	// gate is (seq<<1)|on.  seq counts transitions so the render side can
	// tell a fresh note-on from one it has already applied.
	gate atomic.Uint64
}

// Snapshot is one read of every field of Controls.
type Snapshot struct {
	Frequency float64
	Volume    float64
	Waveform  Waveform
	Env       EnvParams
	Playing   bool
}

func (c *Controls) SetFrequency(hz float64) {
	c.freq.Store(clamp(hz, MinFrequency, MaxFrequency))
}

func (c *Controls) SetVolume(v float64) {
	c.volume.Store(clamp(v, MinVolume, MaxVolume))
}

func (c *Controls) SetWaveform(w Waveform) {
	switch w {
	case Sine, Square, Saw:
		c.waveform.Store(int32(w))
	}
}

func (c *Controls) SetEnvParams(p EnvParams) {
	p = p.Clamp()
	c.attack.Store(p.Attack)
	c.decay.Store(p.Decay)
	c.sustain.Store(p.Sustain)
	c.release.Store(p.Release)
}

func (c *Controls) Frequency() float64 { return c.freq.Load() }
func (c *Controls) Volume() float64    { return c.volume.Load() }
func (c *Controls) Waveform() Waveform { return Waveform(c.waveform.Load()) }
func (c *Controls) Playing() bool      { return c.playing.Load() }

func (c *Controls) EnvParams() EnvParams {
	return EnvParams{
		Attack:  c.attack.Load(),
		Decay:   c.decay.Load(),
		Sustain: c.sustain.Load(),
		Release: c.release.Load(),
	}
}

func (c *Controls) Snapshot() Snapshot {
	return Snapshot{
		Frequency: c.Frequency(),
		Volume:    c.Volume(),
		Waveform:  c.Waveform(),
		Env:       c.EnvParams(),
		Playing:   c.Playing(),
	}
}

// setGate records a gate transition.
func (c *Controls) setGate(on bool) {
	for {
		old := c.gate.Load()
		g := (old>>1 + 1) << 1
		if on {
			g |= 1
		}
		if c.gate.CompareAndSwap(old, g) {
			return
		}
	}
}

func gateSeq(g uint64) uint64 { return g >> 1 }
func gateOn(g uint64) bool    { return g&1 == 1 }
