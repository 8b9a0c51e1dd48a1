// Tonekeys plays a single tone and lets you shape it from the keyboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gordonklaus/tonegen"
)

var (
	driver    = flag.String("driver", "portaudio", "output driver: portaudio, oto or wav")
	out       = flag.String("o", "tone.wav", "output file for -driver wav")
	duration  = flag.Duration("duration", 2*time.Second, "length to render with -driver wav")
	analyze   = flag.Bool("analyze", false, "report the peak frequency of the -driver wav render")
	rate      = flag.Float64("rate", 48000, "sample rate")
	blockSize = flag.Int("block", 512, "frames per block")
	channels  = flag.Int("channels", 2, "output channels")

	freq    = flag.Float64("freq", 440, "frequency in Hz (100-1000)")
	volume  = flag.Float64("volume", .2, "volume (0-1)")
	wave    = flag.String("wave", "sine", "waveform: sine, square or saw")
	attack  = flag.Float64("attack", .1, "attack time in seconds")
	decay   = flag.Float64("decay", .1, "decay time in seconds")
	sustain = flag.Float64("sustain", .1, "sustain level")
	release = flag.Float64("release", .5, "release time in seconds")
	off     = flag.Bool("off", false, "start with the tone stopped")
	tail    = flag.Bool("tail", false, "release the envelope on stop instead of cutting off")
)

func main() {
	log.SetFlags(log.Lshortfile)
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	w, err := tonegen.ParseWaveform(*wave)
	if err != nil {
		return err
	}
	r := tonegen.New(tonegen.Config{
		Frequency:   *freq,
		Volume:      *volume,
		Waveform:    w,
		Env:         tonegen.EnvParams{Attack: *attack, Decay: *decay, Sustain: *sustain, Release: *release},
		Playing:     !*off,
		ReleaseTail: *tail,
	})
	p := tonegen.Params{SampleRate: *rate, BlockSize: *blockSize}

	if *driver == "wav" {
		return renderWAV(r, p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	k, err := openKeyboard(os.Stdin)
	switch {
	case errors.Is(err, errNotTerminal):
		log.Println("stdin is not a terminal; keyboard control disabled, interrupt to stop")
	case err != nil:
		return err
	default:
		defer k.Close()
	}

	d, err := openDriver(*driver, r, p, *channels)
	if err != nil {
		return err
	}
	// Play closes d.
	if k != nil {
		go k.run(r, quit)
		go showStatus(ctx, r)
	}
	err = tonegen.Play(ctx, d)
	fmt.Print("\r\n")
	return err
}

// openDriver returns a nil Driver with any error.
func openDriver(name string, r *tonegen.Renderer, p tonegen.Params, channels int) (tonegen.Driver, error) {
	switch name {
	case "portaudio":
		d, err := tonegen.OpenPortAudio(r, p, channels)
		if err != nil {
			return nil, err
		}
		return d, nil
	case "oto":
		d, err := tonegen.OpenOto(r, p, channels)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown driver %q", name)
}

func showStatus(ctx context.Context, r *tonegen.Renderer) {
	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fmt.Printf("\r%s\x1b[K", statusLine(r.Snapshot(), r.Stage()))
		}
	}
}

func renderWAV(r *tonegen.Renderer, p tonegen.Params) error {
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	d := tonegen.NewWAV(r, p, *channels)
	d.Capture = *analyze
	if err := d.Render(f, duration.Seconds()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s: peak %.3f, rms %.3f", *out, d.Meter.Peak(), d.Meter.Amplitude())

	if *analyze {
		hz, err := tonegen.PeakFreq(d.Samples(), p.SampleRate)
		if err != nil {
			return err
		}
		log.Printf("peak frequency %.1f Hz", hz)
	}
	return nil
}
