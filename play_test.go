package tonegen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeDriver renders blocks from its own goroutine the way a device would.
type fakeDriver struct {
	r        *Renderer
	startErr error

	mu              sync.Mutex
	started, closed bool
	blocks          int
	stop, done      chan struct{}
}

func (d *fakeDriver) Start() error {
	if d.startErr != nil {
		return d.startErr
	}
	d.r.Prepare(48000, 64)
	d.stop, d.done = make(chan struct{}), make(chan struct{})
	d.mu.Lock()
	d.started = true
	d.mu.Unlock()
	go func() {
		defer close(d.done)
		out := block(2, 64)
		for {
			select {
			case <-d.stop:
				return
			default:
			}
			d.r.RenderBlock(out, 64, 48000)
			d.mu.Lock()
			d.blocks++
			d.mu.Unlock()
			time.Sleep(time.Millisecond)
		}
	}()
	return nil
}

func (d *fakeDriver) Stop() error {
	close(d.stop)
	<-d.done
	return nil
}

func (d *fakeDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.r.Release()
	return nil
}

func TestPlay(t *testing.T) {
	r := New(DefaultConfig())
	d := &fakeDriver{r: r}
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- Play(ctx, d) }()

	// control side writes while the device renders
	for i := 0; i < 50; i++ {
		r.SetFrequency(100 + float64(i)*10)
		r.SetWaveform(Waveform(i % 3))
		r.Toggle()
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-errc; err != nil {
		t.Fatal(err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started || !d.closed || d.blocks == 0 {
		t.Errorf("expected started, rendered and closed; got started=%v closed=%v blocks=%d", d.started, d.closed, d.blocks)
	}
}

func TestPlay_startError(t *testing.T) {
	want := errors.New("no device")
	d := &fakeDriver{r: New(DefaultConfig()), startErr: want}
	if err := Play(context.Background(), d); err != want {
		t.Errorf("expected %v, got %v", want, err)
	}
	if !d.closed {
		t.Error("expected driver closed after failed start")
	}
}

func TestPlayAsync_Stop(t *testing.T) {
	d := &fakeDriver{r: New(DefaultConfig())}
	c := PlayAsync(d)
	c.Stop()
	c.Stop()
	select {
	case <-c.Done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Done")
	}
	if c.Err() != nil {
		t.Error(c.Err())
	}
}

func TestOpen_rejectsBadStream(t *testing.T) {
	for _, c := range []struct {
		p        Params
		channels int
	}{
		{Params{SampleRate: 48000, BlockSize: 64}, 0},
		{Params{SampleRate: 48000, BlockSize: 64}, -1},
		{Params{SampleRate: 0, BlockSize: 64}, 2},
	} {
		r := New(DefaultConfig())
		if d, err := OpenOto(r, c.p, c.channels); err == nil || d != nil {
			t.Errorf("OpenOto(%+v, %d): expected error, got %v", c.p, c.channels, err)
		}
		if d, err := OpenPortAudio(r, c.p, c.channels); err == nil || d != nil {
			t.Errorf("OpenPortAudio(%+v, %d): expected error, got %v", c.p, c.channels, err)
		}
	}
}
