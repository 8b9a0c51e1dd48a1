package tonegen

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

const defaultBlockSize = 512

// Oto plays a Renderer through an oto player.  The player pulls interleaved
// float32 frames; they are rendered in blocks into pre-allocated channel
// buffers.
type Oto struct {
	r      *Renderer
	p      Params
	ctx    *oto.Context
	player *oto.Player
	planar [][]float32
}

// OpenOto creates the oto context.  Only one may exist per process.
func OpenOto(r *Renderer, p Params, channels int) (*Oto, error) {
	if err := checkStream(p, channels); err != nil {
		return nil, fmt.Errorf("oto: %w", err)
	}
	if p.BlockSize <= 0 {
		p.BlockSize = defaultBlockSize
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(p.SampleRate),
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(float64(p.BlockSize) / p.SampleRate * float64(time.Second)),
	})
	if err != nil {
		return nil, fmt.Errorf("oto: %w", err)
	}
	<-ready

	d := &Oto{r: r, p: p, ctx: ctx, planar: make([][]float32, channels)}
	for i := range d.planar {
		d.planar[i] = make([]float32, p.BlockSize)
	}
	r.Prepare(p.SampleRate, p.BlockSize)
	d.player = ctx.NewPlayer(d)
	return d, nil
}

func (d *Oto) Read(b []byte) (int, error) {
	frames := len(b) / (4 * len(d.planar))
	off := 0
	for frames > 0 {
		n := min(frames, d.p.BlockSize)
		d.r.RenderBlock(d.planar, n, d.p.SampleRate)
		for i := 0; i < n; i++ {
			for _, ch := range d.planar {
				binary.LittleEndian.PutUint32(b[off:], math.Float32bits(ch[i]))
				off += 4
			}
		}
		frames -= n
	}
	return off, nil
}

func (d *Oto) Start() error {
	d.player.Play()
	return d.ctx.Err()
}

func (d *Oto) Stop() error {
	d.player.Pause()
	return nil
}

func (d *Oto) Close() error {
	err := d.player.Close()
	d.r.Release()
	return err
}
