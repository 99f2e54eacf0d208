package ui

import (
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	chirpPitch = 880
)

// Sound plays the eat chirp. Without a working audio device every call is
// a no-op, the game runs silent.
type Sound struct {
	mu          sync.Mutex
	initialized bool
}

func NewSound() *Sound {
	return &Sound{}
}

// Init opens the speaker.
func (s *Sound) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// Chirp plays a short sine tone.
func (s *Sound) Chirp() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	sine, err := generators.SineTone(sampleRate, chirpPitch)
	if err != nil {
		glog.Warningf("chirp: %v", err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(50*time.Millisecond), sine))
}

func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Close()
	s.initialized = false
}
