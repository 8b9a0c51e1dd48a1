package tonegen

import (
	"fmt"
	"math"
)

type Stage int32

const (
	Idle Stage = iota
	Attack
	Decay
	Sustain
	Release
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case Attack:
		return "attack"
	case Decay:
		return "decay"
	case Sustain:
		return "sustain"
	case Release:
		return "release"
	}
	return fmt.Sprintf("Stage(%d)", int32(s))
}

// Control ranges for envelope parameters.  Times are in seconds.
const (
	MinAttack, MaxAttack   = 0.01, 5.0
	MinDecay, MaxDecay     = 0.01, 2.0
	MinSustain, MaxSustain = 0.01, 1.0
	MinRelease, MaxRelease = 0.01, 5.0
)

type EnvParams struct {
	Attack, Decay, Sustain, Release float64
}

func DefaultEnvParams() EnvParams {
	return EnvParams{Attack: .1, Decay: .1, Sustain: .1, Release: .5}
}

func (p EnvParams) Clamp() EnvParams {
	return EnvParams{
		Attack:  clamp(p.Attack, MinAttack, MaxAttack),
		Decay:   clamp(p.Decay, MinDecay, MaxDecay),
		Sustain: clamp(p.Sustain, MinSustain, MaxSustain),
		Release: clamp(p.Release, MinRelease, MaxRelease),
	}
}

// Env is a linear ADSR envelope.  Each stage ramps from the level it was
// entered at, so no trigger ever makes the level jump.  Parameters set with
// SetParams are latched when a stage is entered; a change in the middle of a
// stage applies from the next one.
type Env struct {
	params EnvParams

	stage   Stage
	elapsed float64
	level   float64

	from, to float64 // ramp endpoints of the current stage
	length   float64 // duration of the current stage
}

func NewEnv(p EnvParams) *Env {
	return &Env{params: p}
}

func (e *Env) InitAudio(Params) { e.Reset() }

func (e *Env) SetParams(p EnvParams) { e.params = p }
func (e *Env) Params() EnvParams     { return e.params }

func (e *Env) Stage() Stage   { return e.stage }
func (e *Env) Level() float64 { return e.level }
func (e *Env) Done() bool     { return e.stage == Idle }

func (e *Env) Reset() {
	e.stage = Idle
	e.elapsed = 0
	e.level = 0
}

// NoteOn enters Attack from the current level.
func (e *Env) NoteOn() {
	e.enter(Attack)
}

// NoteOff enters Release from the current level.  It is a no-op while
// already releasing.
func (e *Env) NoteOff() {
	if e.stage != Release {
		e.enter(Release)
	}
}

func (e *Env) enter(s Stage) {
	e.stage = s
	e.elapsed = 0
	e.from = e.level
	switch s {
	case Attack:
		e.to, e.length = 1, e.params.Attack
	case Decay:
		e.to, e.length = clamp(e.params.Sustain, 0, 1), e.params.Decay
	case Sustain:
		e.to = e.level
	case Release:
		e.to, e.length = 0, e.params.Release
	case Idle:
		e.level = 0
	}
}

// Sing advances the envelope by dt seconds and returns the new level.
func (e *Env) Sing(dt float64) float64 {
	switch e.stage {
	case Idle, Sustain:
		return e.level
	}

	e.elapsed += dt
	if e.length <= 0 || e.elapsed >= e.length {
		e.level = e.to
		switch e.stage {
		case Attack:
			e.enter(Decay)
		case Decay:
			e.enter(Sustain)
		case Release:
			e.enter(Idle)
		}
		return e.level
	}
	e.level = e.from + (e.to-e.from)*e.elapsed/e.length
	return e.level
}

func clamp(x, min, max float64) float64 {
	if math.IsNaN(x) {
		return min
	}
	return math.Max(min, math.Min(max, x))
}
