package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"dripsim/internal/domain"
)

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Program: "pm",
		Day:     45,
		Speed:   5,
		Mode:    domain.ModeRandomMix,
		Inbox: []domain.MessageView{
			{InstanceID: "m2", EmailID: "1a", SentOnDay: 30, Status: domain.StatusUnread},
			{
				InstanceID: "m1", EmailID: "1", SentOnDay: 1, Status: domain.StatusClicked,
				Engagement: domain.Engagement{Opened: true, OpenedOnDay: 3, Clicked: true, ClickedOnDay: 4},
			},
		},
		Timeline: []domain.TimelineEntry{
			{Day: 30, Title: "Email Sent", Description: "Reminder sent on Day 30"},
			{Day: 1, Title: "Email Sent", Description: "Welcome sent on Day 1"},
		},
		Branches:   domain.BranchCounters{Main: 1, Reminder: 1, Conversion: 1},
		InboxStats: domain.InboxStats{Total: 2, Opened: 1, Clicked: 1},
		Days: []domain.DayStats{
			{Day: 1, Sent: 1},
			{Day: 3, Opened: 1},
			{Day: 4, Clicked: 1},
			{Day: 30, Sent: 1},
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}

func TestStore_ExportRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.ExportRun(ctx, testSnapshot())
	if err != nil {
		t.Fatalf("ExportRun failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected a positive run id, got %d", id)
	}

	runs, err := s.ListRuns(ctx, "pm", 10)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.ID != id || r.Day != 45 || r.Mode != domain.ModeRandomMix || r.Speed != 5 {
		t.Errorf("unexpected run %+v", r)
	}
	if r.Branches.Conversion != 1 || r.InboxStats.Clicked != 1 {
		t.Errorf("unexpected counters %+v %+v", r.Branches, r.InboxStats)
	}

	days, err := s.DailyStats(ctx, id)
	if err != nil {
		t.Fatalf("DailyStats failed: %v", err)
	}
	if len(days) != 4 || days[1].Opened != 1 {
		t.Errorf("unexpected daily stats %+v", days)
	}

	var title, desc string
	if err := s.db.QueryRow(`SELECT title, description FROM timeline WHERE run_id = ? AND seq = 0`, id).Scan(&title, &desc); err != nil {
		t.Fatalf("timeline query failed: %v", err)
	}
	if title != "Email Sent" {
		t.Errorf("unexpected title %q", title)
	}
	if desc != "Welcome sent on Day 1" {
		t.Errorf("timeline should be stored oldest first, got %q", desc)
	}

	var opened, clicked *int
	if err := s.db.QueryRow(`SELECT opened_on_day, clicked_on_day FROM messages WHERE run_id = ? AND instance_id = 'm2'`, id).
		Scan(&opened, &clicked); err != nil {
		t.Fatalf("messages query failed: %v", err)
	}
	if opened != nil || clicked != nil {
		t.Errorf("unread message should have null engagement days")
	}
}

func TestStore_ListRunsFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	other := testSnapshot()
	other.Program = "ds"
	for _, snap := range []domain.Snapshot{testSnapshot(), other, testSnapshot()} {
		if _, err := s.ExportRun(ctx, snap); err != nil {
			t.Fatalf("ExportRun failed: %v", err)
		}
	}

	tests := []struct {
		program string
		want    int
	}{
		{"pm", 2},
		{"ds", 1},
		{"", 3},
		{"missing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			runs, err := s.ListRuns(ctx, tt.program, 0)
			if err != nil {
				t.Fatalf("ListRuns failed: %v", err)
			}
			if len(runs) != tt.want {
				t.Errorf("got %d runs, want %d", len(runs), tt.want)
			}
			for i := 1; i < len(runs); i++ {
				if runs[i].ID > runs[i-1].ID {
					t.Error("runs should be newest first")
				}
			}
		})
	}
}

func TestRetryOp(t *testing.T) {
	cfg := retryConfig{maxRetries: 2, baseDelay: time.Millisecond, maxDelay: 2 * time.Millisecond}

	t.Run("transient then success", func(t *testing.T) {
		calls := 0
		err := retryOp(context.Background(), cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked (5) (SQLITE_BUSY)")
			}
			return nil
		})
		if err != nil || calls != 3 {
			t.Errorf("got err=%v calls=%d", err, calls)
		}
	})

	t.Run("permanent error", func(t *testing.T) {
		calls := 0
		err := retryOp(context.Background(), cfg, func() error {
			calls++
			return errors.New("no such table: runs")
		})
		if err == nil || calls != 1 {
			t.Errorf("got err=%v calls=%d", err, calls)
		}
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := retryOp(context.Background(), cfg, func() error {
			calls++
			return errors.New("SQLITE_LOCKED")
		})
		if err == nil || calls != 3 {
			t.Errorf("got err=%v calls=%d", err, calls)
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := retryOp(ctx, cfg, func() error {
			return errors.New("SQLITE_BUSY")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestPathFor(t *testing.T) {
	a, b := PathFor("/a/catalog.yaml"), PathFor("/b/catalog.yaml")
	if a == b {
		t.Error("different catalogs should map to different databases")
	}
	if PathFor("/a/catalog.yaml") != a {
		t.Error("PathFor should be stable")
	}
	if filepath.Ext(a) != ".db" {
		t.Errorf("unexpected path %q", a)
	}
}
