package tonegen

import (
	"context"
	"fmt"
	"log"
)

// A Driver is an audio device that pulls blocks from a Renderer.
type Driver interface {
	Start() error
	Stop() error
	Close() error
}

// Play runs d until ctx is done.
func Play(ctx context.Context, d Driver) error {
	c := PlayAsync(d)
	select {
	case <-ctx.Done():
		c.Stop()
		<-c.Done
		return c.Err()
	case <-c.Done:
		return c.Err()
	}
}

func PlayAsync(d Driver) PlayControl {
	c := PlayControl{make(chan struct{}, 1), make(chan struct{}), new(error)}
	if err := d.Start(); err != nil {
		log.Println(err)
		*c.err = err
		if err := d.Close(); err != nil {
			log.Println(err)
		}
		close(c.Done)
		return c
	}

	go func() {
		defer close(c.Done)
		<-c.stop
		if err := d.Stop(); err != nil {
			log.Println(err)
		}
		if err := d.Close(); err != nil {
			log.Println(err)
		}
	}()
	return c
}

type PlayControl struct {
	stop, Done chan struct{}
	err        *error
}

func (c PlayControl) Stop() {
	select {
	case c.stop <- struct{}{}:
	default:
	}
}

// Err is the error that kept the driver from starting, if any.  It is valid
// once Done is closed.
func (c PlayControl) Err() error { return *c.err }

func checkStream(p Params, channels int) error {
	if channels < 1 {
		return fmt.Errorf("need at least one channel, got %d", channels)
	}
	if !(p.SampleRate > 0) {
		return fmt.Errorf("invalid sample rate %g", p.SampleRate)
	}
	return nil
}
