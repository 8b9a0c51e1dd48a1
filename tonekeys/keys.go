package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/gordonklaus/tonegen"
)

const (
	freqStep    = 10
	volumeStep  = .05
	sustainStep = .05
	timeFactor  = 1.25
)

// controls is the part of the renderer a control surface drives.
type controls interface {
	Toggle()
	Frequency() float64
	SetFrequency(float64)
	Volume() float64
	SetVolume(float64)
	SetWaveform(tonegen.Waveform)
	EnvParams() tonegen.EnvParams
	SetEnvParams(tonegen.EnvParams)
}

// handleKey applies one key press to c.  It returns false for a quit key.
//
//	space, p   start/stop
//	1 2 3      sine, square, saw
//	+ -        frequency
//	] [        volume
//	a/A d/D    attack, decay time down/up
//	s/S        sustain level down/up
//	r/R        release time down/up
//	q, ^C, ^D  quit
func handleKey(c controls, b byte) bool {
	switch b {
	case 'q', 3, 4:
		return false
	case ' ', 'p':
		c.Toggle()
	case '1':
		c.SetWaveform(tonegen.Sine)
	case '2':
		c.SetWaveform(tonegen.Square)
	case '3':
		c.SetWaveform(tonegen.Saw)
	case '+', '=':
		c.SetFrequency(c.Frequency() + freqStep)
	case '-', '_':
		c.SetFrequency(c.Frequency() - freqStep)
	case ']':
		c.SetVolume(c.Volume() + volumeStep)
	case '[':
		c.SetVolume(c.Volume() - volumeStep)
	case 'a', 'A', 'd', 'D', 's', 'S', 'r', 'R':
		c.SetEnvParams(adjustEnv(c.EnvParams(), b))
	}
	return true
}

func adjustEnv(p tonegen.EnvParams, b byte) tonegen.EnvParams {
	switch b {
	case 'a':
		p.Attack /= timeFactor
	case 'A':
		p.Attack *= timeFactor
	case 'd':
		p.Decay /= timeFactor
	case 'D':
		p.Decay *= timeFactor
	case 's':
		p.Sustain -= sustainStep
	case 'S':
		p.Sustain += sustainStep
	case 'r':
		p.Release /= timeFactor
	case 'R':
		p.Release *= timeFactor
	}
	return p
}

func statusLine(s tonegen.Snapshot, stage tonegen.Stage) string {
	state := "off"
	if s.Playing {
		state = "on"
	}
	return fmt.Sprintf("%-3s %-7s %-6s %6.1f Hz  vol %.2f  A %.2f D %.2f S %.2f R %.2f",
		state, stage, s.Waveform, s.Frequency, s.Volume, s.Env.Attack, s.Env.Decay, s.Env.Sustain, s.Env.Release)
}

var errNotTerminal = errors.New("stdin is not a terminal")

// keyboard reads single key presses from a terminal in raw mode.
type keyboard struct {
	f   *os.File
	fd  int
	old *term.State
}

func openKeyboard(f *os.File) (*keyboard, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, errNotTerminal
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("keyboard: %w", err)
	}
	return &keyboard{f: f, fd: fd, old: old}, nil
}

// run feeds key presses to c until a quit key or a read error, then calls
// quit.
func (k *keyboard) run(c controls, quit func()) {
	defer quit()
	buf := make([]byte, 1)
	for {
		n, err := k.f.Read(buf)
		if err != nil {
			return
		}
		if n == 1 && !handleKey(c, buf[0]) {
			return
		}
	}
}

func (k *keyboard) Close() error {
	return term.Restore(k.fd, k.old)
}
