package main

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	toneHz       = 660
	toneDuration = 40 * time.Millisecond
	toneCooldown = 150 * time.Millisecond
)

// tone plays a short sine blip, at most once per cooldown.
type tone struct {
	mu   sync.Mutex
	last time.Time
}

func newTone() (*tone, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &tone{}, nil
}

func (t *tone) play() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if time.Since(t.last) < toneCooldown {
		return
	}
	t.last = time.Now()

	sine, err := generators.SineTone(sampleRate, toneHz)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneDuration), sine))
}

func (t *tone) close() {
	speaker.Close()
}
