package tonegen

import (
	"math"
	"testing"
)

func TestAmpMeter(t *testing.T) {
	m := NewAmpMeter(.1)
	Init(m, Params{SampleRate: 1000})

	x := make([]float32, 100)
	for i := range x {
		x[i] = .5
		if i%2 == 1 {
			x[i] = -.5
		}
	}
	m.Add(x)
	if a := m.Amplitude(); !approx(a, .5, 1e-9) {
		t.Errorf("expected RMS .5, got %f", a)
	}
	if p := m.Peak(); p != .5 {
		t.Errorf("expected peak .5, got %f", p)
	}

	// the window slides past the loud part
	m.Reset()
	m.Add(make([]float32, 100))
	if a := m.Amplitude(); !approx(a, 0, 1e-9) {
		t.Errorf("expected RMS 0, got %f", a)
	}
	if p := m.Peak(); p != 0 {
		t.Errorf("expected peak 0 after reset, got %f", p)
	}
}

func TestAmpMeter_sine(t *testing.T) {
	m := NewAmpMeter(.5)
	Init(m, Params{SampleRate: 48000})
	var o Osc
	x := make([]float32, 24000)
	for i := range x {
		x[i] = float32(o.Next(480, 48000, Sine))
	}
	m.Add(x)
	if a := m.Amplitude(); !approx(a, 1/math.Sqrt2, 1e-3) {
		t.Errorf("expected RMS %f, got %f", 1/math.Sqrt2, a)
	}
}
