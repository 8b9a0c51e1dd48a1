package tonegen

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// PortAudio plays a Renderer on the default output device.
type PortAudio struct {
	r      *Renderer
	p      Params
	stream *portaudio.Stream
}

func OpenPortAudio(r *Renderer, p Params, channels int) (*PortAudio, error) {
	if err := checkStream(p, channels); err != nil {
		return nil, fmt.Errorf("portaudio: %w", err)
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: %w", err)
	}
	d := &PortAudio{r: r, p: p}
	r.Prepare(p.SampleRate, p.BlockSize)
	var err error
	d.stream, err = portaudio.OpenDefaultStream(0, channels, p.SampleRate, p.BlockSize, d.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("portaudio: open stream: %w", err)
	}
	return d, nil
}

func (d *PortAudio) process(out [][]float32) {
	if len(out) == 0 {
		return
	}
	d.r.RenderBlock(out, len(out[0]), d.p.SampleRate)
}

func (d *PortAudio) Start() error { return d.stream.Start() }
func (d *PortAudio) Stop() error  { return d.stream.Stop() }

func (d *PortAudio) Close() error {
	err := d.stream.Close()
	d.r.Release()
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
