package domain

import (
	"strings"
	"testing"
	"time"
)

func fixedRolls(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func TestParseBehaviorMode(t *testing.T) {
	tests := []struct {
		input   string
		want    BehaviorMode
		wantErr bool
	}{
		{"never_open", ModeNeverOpen, false},
		{"always_open", ModeAlwaysOpen, false},
		{"random_mix", ModeRandomMix, false},
		{"random", ModeRandomMix, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBehaviorMode(tt.input)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ParseBehaviorMode(%q) = (%q, %v)", tt.input, got, err)
			}
		})
	}
}

func TestBehaviorMode_Next(t *testing.T) {
	if ModeNeverOpen.Next() != ModeAlwaysOpen || ModeRandomMix.Next() != ModeNeverOpen {
		t.Error("unexpected cycling order")
	}
}

func TestPolicy_Decide(t *testing.T) {
	tests := []struct {
		name      string
		mode      BehaviorMode
		rolls     []float64
		wantOpen  bool
		wantClick bool
	}{
		{"never open ignores rolls", ModeNeverOpen, []float64{0, 0, 0, 0}, false, false},
		{"always open", ModeAlwaysOpen, []float64{0.99, 0.9, 0, 0}, true, false},
		{"always open and click", ModeAlwaysOpen, []float64{0.99, 0.5, 0, 0}, true, true},
		{"random mix miss", ModeRandomMix, []float64{0.7, 0, 0, 0}, false, false},
		{"random mix open only", ModeRandomMix, []float64{0.69, 0.4, 0, 0}, true, false},
		{"random mix click", ModeRandomMix, []float64{0.1, 0.39, 0, 0}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.mode.Policy().Decide(fixedRolls(tt.rolls...))
			if r.Open != tt.wantOpen || r.Click != tt.wantClick {
				t.Errorf("Decide() = open %v click %v, want open %v click %v", r.Open, r.Click, tt.wantOpen, tt.wantClick)
			}
		})
	}
}

func TestPolicy_DecideDelays(t *testing.T) {
	r := ModeAlwaysOpen.Policy().Decide(fixedRolls(0, 0, 0.5, 1))
	if r.OpenDelay != 2*time.Second {
		t.Errorf("OpenDelay = %v, want 2s", r.OpenDelay)
	}
	if r.ClickDelay != 3*time.Second {
		t.Errorf("ClickDelay = %v, want 3s", r.ClickDelay)
	}
}

func TestSpeed(t *testing.T) {
	tests := []struct {
		speed    Speed
		interval time.Duration
		label    string
	}{
		{1, time.Second, "1.0x"},
		{3, 500 * time.Millisecond, "2.0x"},
		{5, 330 * time.Millisecond, "3.0x"},
		{11, 170 * time.Millisecond, "6.0x"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := tt.speed.Interval(time.Second); got != tt.interval {
				t.Errorf("Interval() = %v, want %v", got, tt.interval)
			}
			if got := tt.speed.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
		})
	}

	if _, err := ParseSpeed(0); err == nil {
		t.Error("expected error for speed 0")
	}
	if _, err := ParseSpeed(12); err == nil {
		t.Error("expected error for speed 12")
	}
	if Speed(40).Clamp() != MaxSpeed {
		t.Error("Clamp should cap at MaxSpeed")
	}
}

func TestVariation(t *testing.T) {
	n := EmailNode{ID: "2b", Kind: KindReminder}
	v := VariationFor(n)
	if v.Kind != VariationReminder || v.Index != 1 {
		t.Fatalf("VariationFor(2b) = %+v", v)
	}
	if got := v.Subject("Highlights"); got != "Don't Miss: Highlights" {
		t.Errorf("Subject() = %q", got)
	}
	if got := v.Subject("Reminder - Highlights"); got != "Reminder - Highlights" {
		t.Errorf("already-prefixed subject changed: %q", got)
	}
	if v.Badge() != "Second Notice" {
		t.Errorf("Badge() = %q", v.Badge())
	}

	html := v.RewriteHTML(`<html><body><a>Learn More</a><a>Enroll Now</a></body></html>`)
	for _, want := range []string{">Don't Miss Out - Learn More<", ">Last Chance - Enroll Now<", `<body><div class="variation-badge">Second Notice</div>`} {
		if !strings.Contains(html, want) {
			t.Errorf("rewritten HTML missing %q: %s", want, html)
		}
	}

	plain := VariationFor(EmailNode{ID: "2", Kind: KindMain})
	if plain.Subject("Hi") != "Hi" || plain.RewriteHTML("<a>Learn More</a>") != "<a>Learn More</a>" {
		t.Error("main emails must not be varied")
	}
}
