package tonegen

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
)

// PeakFreq returns the frequency of the strongest bin of the Hann-windowed
// spectrum of x.  Only the largest power-of-two prefix of x is used.
func PeakFreq(x []float64, sampleRate float64) (float64, error) {
	size := 1
	for size*2 <= len(x) {
		size *= 2
	}
	if size < 4 {
		return 0, errors.New("PeakFreq: need at least 4 samples")
	}

	f, err := fft.New(size)
	if err != nil {
		return 0, err
	}
	buf := make([]complex128, size)
	for i := range buf {
		w := (1 - math.Cos(2*math.Pi*float64(i)/float64(size))) / 2
		buf[i] = complex(x[i]*w, 0)
	}
	buf = f.Transform(buf)

	peak, peakMag := 0, 0.0
	for i := 1; i < size/2; i++ {
		if m := cmplx.Abs(buf[i]); m > peakMag {
			peak, peakMag = i, m
		}
	}
	if peakMag == 0 {
		return 0, nil
	}
	return float64(peak) * sampleRate / float64(size), nil
}
