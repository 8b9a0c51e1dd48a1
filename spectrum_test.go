package tonegen

import (
	"math"
	"testing"
)

func TestPeakFreq(t *testing.T) {
	const sampleRate = 48000
	binWidth := sampleRate / 8192.0
	for _, freq := range []float64{100, 440, 523.25, 1000} {
		var o Osc
		x := make([]float64, 10000)
		for i := range x {
			x[i] = o.Next(freq, sampleRate, Sine)
		}
		got, err := PeakFreq(x, sampleRate)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-freq) > binWidth {
			t.Errorf("freq=%.2f: expected within %.2f Hz, got %.2f", freq, binWidth, got)
		}
	}
}

func TestPeakFreq_silence(t *testing.T) {
	got, err := PeakFreq(make([]float64, 1024), 48000)
	if err != nil || got != 0 {
		t.Errorf("expected 0, nil; got %f, %v", got, err)
	}
	if _, err := PeakFreq(make([]float64, 3), 48000); err == nil {
		t.Error("expected error for 3 samples")
	}
}
