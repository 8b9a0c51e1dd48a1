package tonegen

import (
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	var i audioIniter
	didPanic := false
	func() {
		defer func() {
			if x := recover(); x != nil {
				didPanic = true
			}
		}()
		Init(i, Params{})
	}()
	if !didPanic {
		t.Error("expected panic")
	}
	if i.inited {
		t.Error("expected not inited")
	}

	Init(&i, Params{})
	if !i.inited {
		t.Error("expected inited")
	}
}

func TestInit_walksStructsAndSlices(t *testing.T) {
	var x struct {
		Osc  Osc
		Envs []*Env
		p    Params // unexported fields are skipped
	}
	x.Osc.Next(440, 48000, Sine)
	x.Envs = []*Env{NewEnv(DefaultEnvParams()), NewEnv(DefaultEnvParams())}
	for _, e := range x.Envs {
		e.NoteOn()
	}

	p := Params{SampleRate: 48000, BlockSize: 128}
	Init(&x, p)
	if x.Osc.Params != p || x.Osc.Phase() != 0 {
		t.Errorf("osc not inited: %+v phase %f", x.Osc.Params, x.Osc.Phase())
	}
	for i, e := range x.Envs {
		if e.Stage() != Idle {
			t.Errorf("env %d: expected idle, got %v", i, e.Stage())
		}
	}
	if x.p != (Params{}) {
		t.Errorf("unexported field inited: %+v", x.p)
	}
}

type audioIniter struct {
	inited bool
}

func (i *audioIniter) InitAudio(p Params) { i.inited = true }

func TestInit_panicNamesField(t *testing.T) {
	defer func() {
		x := recover()
		if x == nil {
			t.Fatal("expected panic")
		}
		if s, _ := x.(string); !strings.Contains(s, ".Meter") {
			t.Errorf("expected the panic to name the field, got %v", x)
		}
	}()
	Init(struct{ Meter AmpMeter }{}, Params{SampleRate: 48000})
}

func TestRenderer_Prepare(t *testing.T) {
	r := New(DefaultConfig())
	r.Prepare(48000, 64)
	r.RenderBlock(block(1, 64), 64, 48000)
	if r.Phase() == 0 || r.Level() == 0 {
		t.Fatalf("expected the voice to advance, got phase %f level %f", r.Phase(), r.Level())
	}
	r.Prepare(44100, 128)
	if r.voice.Params != (Params{SampleRate: 44100, BlockSize: 128}) {
		t.Errorf("unexpected params %+v", r.voice.Params)
	}
	if r.Phase() != 0 || r.Level() != 0 || r.voice.Env.Stage() != Idle {
		t.Errorf("expected reset voice, got phase %f level %f stage %v", r.Phase(), r.Level(), r.voice.Env.Stage())
	}
}
