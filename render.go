package tonegen

import "sync/atomic"

type Config struct {
	Frequency float64
	Volume    float64
	Waveform  Waveform
	Env       EnvParams
	Playing   bool

	// ReleaseTail makes StopTone release the envelope instead of silencing
	// the output at the next block.  Output stops once the envelope is idle.
	ReleaseTail bool
}

func DefaultConfig() Config {
	return Config{
		Frequency: 440,
		Volume:    .2,
		Waveform:  Sine,
		Env:       DefaultEnvParams(),
		Playing:   true,
	}
}

// voice is the state owned by the render side.
type voice struct {
	Params Params
	Osc    Osc
	Env    Env
}

// Renderer is a single voice: an Osc shaped by an Env and scaled by volume.
//
// The embedded Controls may be written from any goroutine.  Prepare,
// RenderBlock and Release belong to the audio device and must not be called
// concurrently with each other.
type Renderer struct {
	Controls
	releaseTail bool

	voice    voice
	seenGate uint64

	// published by the render side
	sounding atomic.Bool
	stage    atomic.Int32
}

func New(c Config) *Renderer {
	r := &Renderer{releaseTail: c.ReleaseTail}
	r.SetFrequency(c.Frequency)
	r.SetVolume(c.Volume)
	r.SetWaveform(c.Waveform)
	r.SetEnvParams(c.Env)
	r.voice.Env.SetParams(r.EnvParams())
	if c.Playing {
		r.StartTone()
	}
	return r
}

// Prepare resets the oscillator phase and the envelope for a new stream.
// A gate that is on is applied again at the next block; one that is off
// is not, as the envelope is already idle.
func (r *Renderer) Prepare(sampleRate float64, blockSize int) {
	Init(&r.voice, Params{SampleRate: sampleRate, BlockSize: blockSize})
	r.seenGate = 0
	if g := r.gate.Load(); !gateOn(g) {
		r.seenGate = g
	}
	r.sounding.Store(false)
	r.stage.Store(int32(Idle))
}

// RenderBlock writes n samples of the voice into every channel of out.  It
// does not allocate, lock or block.
func (r *Renderer) RenderBlock(out [][]float32, n int, sampleRate float64) {
	for _, ch := range out {
		if len(ch) < n {
			n = len(ch)
		}
	}
	if n <= 0 {
		return
	}

	// The gate is loaded before playing: StartTone stores them in the
	// opposite order, so a fresh note-on always comes with playing set.
	g := r.gate.Load()
	s := r.Snapshot()
	r.voice.Env.SetParams(s.Env)
	if g != r.seenGate {
		r.seenGate = g
		if gateOn(g) {
			r.voice.Env.NoteOn()
		} else {
			r.voice.Env.NoteOff()
		}
	}

	active := s.Playing || r.releaseTail && !r.voice.Env.Done()
	if !active {
		r.voice.Env.Reset()
		for _, ch := range out {
			clear(ch[:n])
		}
		r.publish(false)
		return
	}

	dt := 0.0
	if sampleRate > 0 {
		dt = 1 / sampleRate
	}
	vol := clamp(s.Volume, MinVolume, MaxVolume)
	for i := 0; i < n; i++ {
		env := r.voice.Env.Sing(dt)
		x := float32(r.voice.Osc.Next(s.Frequency, sampleRate, s.Waveform) * env * vol)
		for _, ch := range out {
			ch[i] = x
		}
	}
	r.publish(s.Playing || !r.voice.Env.Done())
}

func (r *Renderer) publish(sounding bool) {
	r.sounding.Store(sounding)
	r.stage.Store(int32(r.voice.Env.Stage()))
}

// Release is called by the device when the stream is torn down.
func (r *Renderer) Release() {}

func (r *Renderer) StartTone() {
	r.playing.Store(true)
	r.setGate(true)
}

func (r *Renderer) StopTone() {
	r.playing.Store(false)
	r.setGate(false)
}

// Toggle starts the tone if it is stopped and stops it otherwise.
func (r *Renderer) Toggle() {
	if r.Playing() {
		r.StopTone()
	} else {
		r.StartTone()
	}
}

// Sounding reports whether the last rendered block was not forced silent.
func (r *Renderer) Sounding() bool { return r.sounding.Load() }

// Stage is the envelope stage at the end of the last rendered block.
func (r *Renderer) Stage() Stage { return Stage(r.stage.Load()) }

// Phase is the oscillator phase.  Only the render side may call it while a
// stream is running.
func (r *Renderer) Phase() float64 { return r.voice.Osc.Phase() }

// Level is the envelope level.  Only the render side may call it while a
// stream is running.
func (r *Renderer) Level() float64 { return r.voice.Env.Level() }
