package tonegen

import "math"

// AmpMeter tracks the RMS amplitude over a sliding window and the peak
// absolute sample since the last Reset.
type AmpMeter struct {
	windowSize float64
	buf        []float64
	i          int
	sum        float64
	peak       float64
}

func NewAmpMeter(windowSize float64) *AmpMeter {
	return &AmpMeter{windowSize: windowSize}
}

func (a *AmpMeter) InitAudio(p Params) {
	n := int(p.SampleRate * a.windowSize)
	if n < 1 {
		n = 1
	}
	a.buf = make([]float64, n)
	a.i, a.sum, a.peak = 0, 0, 0
}

func (a *AmpMeter) Add(x []float32) {
	for _, x := range x {
		x := float64(x)
		a.sum -= a.buf[a.i]
		a.buf[a.i] = x * x
		a.sum += a.buf[a.i]
		a.i = (a.i + 1) % len(a.buf)
		a.peak = math.Max(a.peak, math.Abs(x))
	}
}

func (a *AmpMeter) Amplitude() float64 {
	return math.Sqrt(math.Max(0, a.sum) / float64(len(a.buf)))
}

func (a *AmpMeter) Peak() float64 { return a.peak }

func (a *AmpMeter) Reset() { a.peak = 0 }
