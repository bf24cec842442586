package main

import (
	"context"
	"testing"
	"time"

	"github.com/ied-protocol/ied-go/pkg/config"
	"github.com/ied-protocol/ied-go/pkg/sim"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"1", 1},
		{"-42", -42},
		{"225.5", 225.5},
		{"true", true},
		{"false", false},
		{"on", "on"},
		{"phsA", "phsA"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseValue(tt.in); got != tt.want {
				t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestRunDriftStops(t *testing.T) {
	server, err := config.Default().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	simulator := sim.New(time.Millisecond)
	if err := addDriftChannels(simulator, server); err != nil {
		t.Fatalf("addDriftChannels failed: %v", err)
	}

	stop := runDrift(context.Background(), simulator)

	waitFor := func(want bool, what string) {
		t.Helper()
		deadline := time.After(time.Second)
		for simulator.Running() != want {
			select {
			case <-deadline:
				t.Fatalf("simulator never %s", what)
			case <-time.After(time.Millisecond):
			}
		}
	}

	waitFor(true, "started")
	stop()
	waitFor(false, "stopped")
}
