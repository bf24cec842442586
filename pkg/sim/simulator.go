package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ied-protocol/ied-go/pkg/model"
)

// Channel is one simulated measurement: an attribute driven by a bounded
// random walk.
type Channel struct {
	attr *model.DataAttribute

	// Min and Max bound the walk.
	Min float64
	Max float64

	// Amplitude is the largest step per tick.
	Amplitude float64
}

// Simulator mutates a set of attributes on a fixed interval.
type Simulator struct {
	mu sync.Mutex

	interval time.Duration
	channels []*Channel
	rng      *rand.Rand
	running  bool
}

// New creates a simulator with the given tick interval.
func New(interval time.Duration) *Simulator {
	return &Simulator{
		interval: interval,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// AddChannel registers an attribute for simulated drift. The attribute's
// current value must be a float64 within [min, max].
func (s *Simulator) AddChannel(attr *model.DataAttribute, min, max, amplitude float64) error {
	if min >= max {
		return fmt.Errorf("channel %s: min %v must be below max %v", attr.Path(), min, max)
	}
	if _, ok := attr.Value().(float64); !ok {
		return fmt.Errorf("channel %s: value must be float64, got %T", attr.Path(), attr.Value())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = append(s.channels, &Channel{
		attr:      attr,
		Min:       min,
		Max:       max,
		Amplitude: amplitude,
	})
	return nil
}

// Running returns whether Run is currently active.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Run ticks until the context is cancelled. Only one Run may be active.
func (s *Simulator) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("simulator already running")
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step advances every channel by one tick. Exposed for deterministic use
// in tests and interactive tooling.
func (s *Simulator) Step() {
	s.mu.Lock()
	channels := make([]*Channel, len(s.channels))
	copy(channels, s.channels)
	rng := s.rng
	s.mu.Unlock()

	for _, ch := range channels {
		current, _ := ch.attr.Value().(float64)

		s.mu.Lock()
		step := (rng.Float64()*2 - 1) * ch.Amplitude
		s.mu.Unlock()

		next := current + step
		if next < ch.Min {
			next = ch.Min
		}
		if next > ch.Max {
			next = ch.Max
		}

		// Round to one decimal so repeated small steps can land on the
		// same value, covering the no-op write path too.
		next = math.Round(next*10) / 10

		ch.attr.SetValue(next)
	}
}
