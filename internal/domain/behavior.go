package domain

import (
	"fmt"
	"time"
)

// BehaviorMode selects the probability policy used while autoplay runs
type BehaviorMode string

const (
	ModeNeverOpen  BehaviorMode = "never_open"
	ModeAlwaysOpen BehaviorMode = "always_open"
	ModeRandomMix  BehaviorMode = "random_mix"
)

// DefaultMode is the behavior a fresh engine starts with
const DefaultMode = ModeRandomMix

// BehaviorModes lists the modes in cycling order
var BehaviorModes = []BehaviorMode{ModeNeverOpen, ModeAlwaysOpen, ModeRandomMix}

// ParseBehaviorMode accepts a mode name; "random" is an alias of random_mix
func ParseBehaviorMode(s string) (BehaviorMode, error) {
	switch s {
	case "random":
		return ModeRandomMix, nil
	case string(ModeNeverOpen), string(ModeAlwaysOpen), string(ModeRandomMix):
		return BehaviorMode(s), nil
	default:
		return "", fmt.Errorf("unknown behavior mode %q (want never_open, always_open or random_mix)", s)
	}
}

// Next returns the mode after m in cycling order
func (m BehaviorMode) Next() BehaviorMode {
	for i, mode := range BehaviorModes {
		if mode == m {
			return BehaviorModes[(i+1)%len(BehaviorModes)]
		}
	}
	return DefaultMode
}

// Policy holds the probabilities of a mode. Click is conditioned on open.
type Policy struct {
	Open  float64
	Click float64
}

// Policy returns the probabilities of m
func (m BehaviorMode) Policy() Policy {
	switch m {
	case ModeNeverOpen:
		return Policy{}
	case ModeAlwaysOpen:
		return Policy{Open: 1, Click: 0.6}
	default:
		return Policy{Open: 0.7, Click: 0.4}
	}
}

// Randomized delays between a send and the simulated reaction
const (
	OpenDelayMin     = 500 * time.Millisecond
	OpenDelaySpread  = 3 * time.Second
	ClickDelayMin    = time.Second
	ClickDelaySpread = 2 * time.Second
)

// Reaction is the outcome of one behavior draw
type Reaction struct {
	Open       bool
	Click      bool
	OpenDelay  time.Duration
	ClickDelay time.Duration
}

// Decide draws a reaction from the policy. rnd returns values in [0, 1)
// and is called exactly four times so runs with a fixed seed replay.
func (p Policy) Decide(rnd func() float64) Reaction {
	openRoll, clickRoll := rnd(), rnd()
	openJitter, clickJitter := rnd(), rnd()
	r := Reaction{
		Open:       openRoll < p.Open,
		OpenDelay:  OpenDelayMin + time.Duration(openJitter*float64(OpenDelaySpread)),
		ClickDelay: ClickDelayMin + time.Duration(clickJitter*float64(ClickDelaySpread)),
	}
	r.Click = r.Open && clickRoll < p.Click
	return r
}
