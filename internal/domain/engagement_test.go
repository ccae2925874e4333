package domain

import (
	"errors"
	"testing"
)

func TestEngagement_OpenKeepsFirstDay(t *testing.T) {
	var e Engagement
	if !e.Open(3) {
		t.Fatal("first open should change the record")
	}
	if e.Open(5) {
		t.Error("second open should be a no-op")
	}
	if e.OpenedOnDay != 3 {
		t.Errorf("OpenedOnDay = %d, want 3", e.OpenedOnDay)
	}
}

func TestEngagement_ClickBackfillsOpen(t *testing.T) {
	var e Engagement
	clicked, opened := e.Click(4)
	if !clicked || !opened {
		t.Fatalf("Click() = (%v, %v), want (true, true)", clicked, opened)
	}
	if e.OpenedOnDay != 4 || e.ClickedOnDay != 4 {
		t.Errorf("days = %d/%d, want 4/4", e.OpenedOnDay, e.ClickedOnDay)
	}
	if !e.Consistent() {
		t.Error("record should be consistent")
	}

	clicked, opened = e.Click(9)
	if clicked || opened {
		t.Errorf("repeat Click() = (%v, %v), want (false, false)", clicked, opened)
	}
	if e.ClickedOnDay != 4 {
		t.Errorf("ClickedOnDay = %d, want 4", e.ClickedOnDay)
	}
}

func TestEngagement_ClickAfterOpenKeepsOpenDay(t *testing.T) {
	var e Engagement
	e.Open(2)
	e.Click(6)
	if e.OpenedOnDay != 2 || e.ClickedOnDay != 6 {
		t.Errorf("days = %d/%d, want 2/6", e.OpenedOnDay, e.ClickedOnDay)
	}
	if e.Status() != StatusClicked {
		t.Errorf("Status() = %s, want clicked", e.Status())
	}
}

func TestEngagement_Toggle(t *testing.T) {
	tests := []struct {
		name    string
		start   Engagement
		kind    EngagementKind
		want    Engagement
		wantErr error
	}{
		{
			name: "open on",
			kind: EngagementOpened,
			want: Engagement{Opened: true, OpenedOnDay: 5},
		},
		{
			name:  "open off",
			start: Engagement{Opened: true, OpenedOnDay: 2},
			kind:  EngagementOpened,
			want:  Engagement{},
		},
		{
			name:    "open off while clicked is refused",
			start:   Engagement{Opened: true, OpenedOnDay: 2, Clicked: true, ClickedOnDay: 3},
			kind:    EngagementOpened,
			want:    Engagement{Opened: true, OpenedOnDay: 2, Clicked: true, ClickedOnDay: 3},
			wantErr: ErrClickedStaysOpened,
		},
		{
			name: "click on forces open",
			kind: EngagementClicked,
			want: Engagement{Opened: true, OpenedOnDay: 5, Clicked: true, ClickedOnDay: 5},
		},
		{
			name:  "click on moves the open to the click day",
			start: Engagement{Opened: true, OpenedOnDay: 1},
			kind:  EngagementClicked,
			want:  Engagement{Opened: true, OpenedOnDay: 5, Clicked: true, ClickedOnDay: 5},
		},
		{
			name:  "click off does not un-open",
			start: Engagement{Opened: true, OpenedOnDay: 1, Clicked: true, ClickedOnDay: 2},
			kind:  EngagementClicked,
			want:  Engagement{Opened: true, OpenedOnDay: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.start
			_, err := e.Toggle(tt.kind, 5)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Toggle() error = %v, want %v", err, tt.wantErr)
			}
			if e != tt.want {
				t.Errorf("Toggle() = %+v, want %+v", e, tt.want)
			}
			if !e.Consistent() {
				t.Errorf("record %+v is inconsistent", e)
			}
		})
	}
}

func TestParseEngagementKind(t *testing.T) {
	if _, err := ParseEngagementKind("clicked"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseEngagementKind("bounced"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
