package domain

import (
	"strings"
	"testing"
)

func mainNode(n int, subject string) EmailNode {
	return EmailNode{ID: MainID(n), Kind: KindMain, Subject: subject}
}

func reminderNode(n int, gen rune, subject string) EmailNode {
	return EmailNode{ID: ReminderID(n, gen), Kind: KindReminder, Subject: subject}
}

func testProgram(t *testing.T) *Program {
	t.Helper()
	p, err := NewProgram("pm", "Project Management", "test", []EmailNode{
		mainNode(1, "Welcome"),
		reminderNode(1, 'a', "Reminder - Welcome"),
		reminderNode(1, 'b', "Second reminder - Welcome"),
		mainNode(2, "Highlights"),
		mainNode(3, "Structure"),
		reminderNode(3, 'a', "Reminder - Structure"),
	})
	if err != nil {
		t.Fatalf("NewProgram failed: %v", err)
	}
	return p
}

func TestNewProgram_AssignsSequenceIndex(t *testing.T) {
	p := testProgram(t)
	for i, n := range p.Emails() {
		if n.SequenceIndex != i {
			t.Errorf("node %s: SequenceIndex = %d, want %d", n.ID, n.SequenceIndex, i)
		}
	}
	if len(p.Mains()) != 3 {
		t.Errorf("expected 3 mains, got %d", len(p.Mains()))
	}
}

func TestNewProgram_Validation(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		nodes  []EmailNode
		errMsg string
	}{
		{
			name:   "missing key",
			key:    "",
			nodes:  []EmailNode{mainNode(1, "a")},
			errMsg: "key is required",
		},
		{
			name:   "empty",
			key:    "x",
			errMsg: "no emails",
		},
		{
			name:   "duplicate id",
			key:    "x",
			nodes:  []EmailNode{mainNode(1, "a"), mainNode(1, "b")},
			errMsg: "duplicate email ID 1",
		},
		{
			name:   "orphan reminder",
			key:    "x",
			nodes:  []EmailNode{mainNode(1, "a"), reminderNode(2, 'a', "r")},
			errMsg: "has no main email 2",
		},
		{
			name:   "reminder before main",
			key:    "x",
			nodes:  []EmailNode{reminderNode(1, 'a', "r"), mainNode(1, "a")},
			errMsg: "precedes its main",
		},
		{
			name:   "gap in chain",
			key:    "x",
			nodes:  []EmailNode{mainNode(1, "a"), reminderNode(1, 'b', "r")},
			errMsg: "expected generation a",
		},
		{
			name:   "kind mismatch",
			key:    "x",
			nodes:  []EmailNode{{ID: "1a", Kind: KindMain}},
			errMsg: "bare number",
		},
		{
			name:   "reminders only",
			key:    "x",
			nodes:  []EmailNode{{ID: "1", Kind: KindReminder}},
			errMsg: "generation letter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProgram(tt.key, "name", "", tt.nodes)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q does not contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestProgram_Traversal(t *testing.T) {
	p := testProgram(t)

	t.Run("first main", func(t *testing.T) {
		n, ok := p.FirstMain()
		if !ok || n.ID != "1" {
			t.Errorf("FirstMain() = %s, %v", n.ID, ok)
		}
	})

	nextMain := []struct {
		from EmailID
		want EmailID
		ok   bool
	}{
		{"1", "2", true},
		{"1a", "2", true},
		{"1b", "2", true},
		{"2", "3", true},
		{"3", "", false},
		{"3a", "", false},
		{"9", "", false},
	}
	for _, tt := range nextMain {
		t.Run("next main after "+string(tt.from), func(t *testing.T) {
			n, ok := p.NextMain(tt.from)
			if ok != tt.ok || n.ID != tt.want {
				t.Errorf("NextMain(%s) = (%s, %v), want (%s, %v)", tt.from, n.ID, ok, tt.want, tt.ok)
			}
		})
	}

	reminderFor := []struct {
		main EmailID
		want EmailID
		ok   bool
	}{
		{"1", "1a", true},
		{"2", "", false},
		{"3", "3a", true},
		{"1a", "", false},
	}
	for _, tt := range reminderFor {
		t.Run("reminder for "+string(tt.main), func(t *testing.T) {
			n, ok := p.ReminderFor(tt.main)
			if ok != tt.ok || n.ID != tt.want {
				t.Errorf("ReminderFor(%s) = (%s, %v), want (%s, %v)", tt.main, n.ID, ok, tt.want, tt.ok)
			}
		})
	}

	nextReminder := []struct {
		from EmailID
		want EmailID
		ok   bool
	}{
		{"1a", "1b", true},
		{"1b", "", false},
		{"3a", "", false},
		{"1", "", false},
	}
	for _, tt := range nextReminder {
		t.Run("next reminder after "+string(tt.from), func(t *testing.T) {
			n, ok := p.NextReminder(tt.from)
			if ok != tt.ok || n.ID != tt.want {
				t.Errorf("NextReminder(%s) = (%s, %v), want (%s, %v)", tt.from, n.ID, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	p := testProgram(t)
	other, err := NewProgram("ds", "Data Science", "", []EmailNode{mainNode(1, "Hi")})
	if err != nil {
		t.Fatalf("NewProgram failed: %v", err)
	}

	c, err := NewCatalog(p, other)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	keys := c.Keys()
	if len(keys) != 2 || keys[0] != "ds" || keys[1] != "pm" {
		t.Errorf("Keys() = %v, want [ds pm]", keys)
	}
	if _, ok := c.Program("pm"); !ok {
		t.Error("expected pm in catalog")
	}
	if _, ok := c.Program("nope"); ok {
		t.Error("unexpected program nope")
	}

	if _, err := NewCatalog(p, p); err == nil {
		t.Error("expected duplicate key error")
	}
	if _, err := NewCatalog(); err == nil {
		t.Error("expected empty catalog error")
	}
}
