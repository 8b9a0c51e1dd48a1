package tonegen

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV renders a Renderer offline, block by block, into a 16-bit PCM file.
type WAV struct {
	r        *Renderer
	p        Params
	channels int

	Meter *AmpMeter

	// Capture keeps the first channel of everything rendered, for analysis.
	Capture bool
	samples []float64
}

func NewWAV(r *Renderer, p Params, channels int) *WAV {
	if p.BlockSize <= 0 {
		p.BlockSize = defaultBlockSize
	}
	if channels < 1 {
		channels = 1
	}
	return &WAV{r: r, p: p, channels: channels, Meter: NewAmpMeter(.05)}
}

// Render writes seconds of audio to w.
func (d *WAV) Render(w io.WriteSeeker, seconds float64) error {
	d.r.Prepare(d.p.SampleRate, d.p.BlockSize)
	defer d.r.Release()
	Init(d.Meter, d.p)
	d.samples = d.samples[:0]

	enc := wav.NewEncoder(w, int(d.p.SampleRate), 16, d.channels, 1)
	planar := make([][]float32, d.channels)
	for i := range planar {
		planar[i] = make([]float32, d.p.BlockSize)
	}
	data := make([]int, d.p.BlockSize*d.channels)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: d.channels, SampleRate: int(d.p.SampleRate)},
		SourceBitDepth: 16,
	}

	for left := int(seconds * d.p.SampleRate); left > 0; {
		n := min(left, d.p.BlockSize)
		d.r.RenderBlock(planar, n, d.p.SampleRate)
		d.Meter.Add(planar[0][:n])
		if d.Capture {
			for _, x := range planar[0][:n] {
				d.samples = append(d.samples, float64(x))
			}
		}
		for i := 0; i < n; i++ {
			for c, ch := range planar {
				data[i*d.channels+c] = pcm16(ch[i])
			}
		}
		buf.Data = data[:n*d.channels]
		if err := enc.Write(buf); err != nil {
			enc.Close()
			return fmt.Errorf("wav: %w", err)
		}
		left -= n
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

// Samples returns the captured first channel of the last Render.
func (d *WAV) Samples() []float64 { return d.samples }

func pcm16(x float32) int {
	return int(math.Round(clamp(float64(x), -1, 1) * 32767))
}
