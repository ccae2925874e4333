package mcp

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dripsim/internal/adapters/systemclock"
	"dripsim/internal/application/journey"
	"dripsim/internal/domain"
)

func testEngine(t *testing.T) *journey.Engine {
	t.Helper()
	node := func(id, subject string) domain.EmailNode {
		eid := domain.EmailID(id)
		kind := domain.KindMain
		if eid.IsReminder() {
			kind = domain.KindReminder
		}
		return domain.EmailNode{ID: eid, Kind: kind, Subject: subject}
	}
	pm, err := domain.NewProgram("pm", "Project Management", "", []domain.EmailNode{
		node("1", "Welcome"), node("1a", "Reminder - Welcome"), node("2", "Methodologies"),
	})
	if err != nil {
		t.Fatal(err)
	}
	ds, err := domain.NewProgram("ds", "Data Science", "", []domain.EmailNode{node("1", "Hello data")})
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := domain.NewCatalog(pm, ds)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	e, err := journey.New(context.Background(), catalog, nil, "pm",
		journey.WithClock(systemclock.NewStepped(time.Time{})),
		journey.WithIDGenerator(func() string { n++; return fmt.Sprintf("msg-%d", n) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", res.Content[0])
	}
	return text.Text, res.IsError
}

func TestRegisterTools(t *testing.T) {
	s := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(true))
	e := testEngine(t)
	RegisterReadTools(s, e)
	RegisterWriteTools(s, e)
}

func TestAdvanceAndInbox(t *testing.T) {
	e := testEngine(t)

	text, isErr := call(t, advanceHandler(e), map[string]any{"days": float64(1)})
	if isErr || !strings.Contains(text, "Advanced to day 1") {
		t.Fatalf("advance = %q (error %v)", text, isErr)
	}

	text, _ = call(t, inboxHandler(e), nil)
	if !strings.Contains(text, "msg-1") || !strings.Contains(text, "Welcome") {
		t.Errorf("inbox = %q", text)
	}

	text, _ = call(t, inboxHandler(e), map[string]any{"status": "clicked"})
	if text != "No results." {
		t.Errorf("filtered inbox = %q", text)
	}
}

func TestAdvanceRejectsBadDays(t *testing.T) {
	e := testEngine(t)
	_, isErr := call(t, advanceHandler(e), map[string]any{"days": float64(0)})
	if !isErr {
		t.Error("expected error for zero days")
	}
	if e.Snapshot().Day != 0 {
		t.Errorf("day = %d, want 0", e.Snapshot().Day)
	}
}

func TestMarkOpenedUpdatesStatus(t *testing.T) {
	e := testEngine(t)
	e.Advance()

	text, isErr := call(t, markHandler(e, domain.EngagementOpened, false), map[string]any{"instance_id": "msg-1"})
	if isErr {
		t.Fatalf("mark_opened failed: %s", text)
	}
	if !strings.Contains(text, "now opened") {
		t.Errorf("mark_opened = %q", text)
	}

	text, _ = call(t, statusHandler(e), nil)
	if !strings.Contains(text, "main=1") {
		t.Errorf("status = %q, want main=1", text)
	}
}

func TestToggleRequiresKind(t *testing.T) {
	e := testEngine(t)
	e.Advance()
	_, isErr := call(t, toggleHandler(e), map[string]any{"instance_id": "msg-1", "kind": "bounced"})
	if !isErr {
		t.Error("expected error for unknown kind")
	}
}

func TestPreviewUnknownInstance(t *testing.T) {
	e := testEngine(t)
	_, isErr := call(t, previewHandler(e), map[string]any{"instance_id": "nope"})
	if !isErr {
		t.Error("expected error for unknown instance")
	}
	_, isErr = call(t, previewHandler(e), nil)
	if !isErr {
		t.Error("expected error for missing instance id")
	}
}

func TestSwitchProgramAndCatalog(t *testing.T) {
	e := testEngine(t)

	text, isErr := call(t, switchProgramHandler(e), map[string]any{"program": "ds"})
	if isErr || !strings.Contains(text, "Data Science") {
		t.Fatalf("switch_program = %q (error %v)", text, isErr)
	}

	text, _ = call(t, catalogHandler(e), nil)
	if !strings.Contains(text, "* ds") {
		t.Errorf("catalog = %q, want ds marked active", text)
	}

	_, isErr = call(t, switchProgramHandler(e), map[string]any{"program": "zz"})
	if !isErr {
		t.Error("expected error for unknown program")
	}
}

func TestSpeedAndMode(t *testing.T) {
	e := testEngine(t)

	if _, isErr := call(t, setSpeedHandler(e), map[string]any{"speed": float64(9)}); isErr {
		t.Fatal("set_speed failed")
	}
	if e.Snapshot().Speed != 9 {
		t.Errorf("speed = %d, want 9", e.Snapshot().Speed)
	}
	if _, isErr := call(t, setSpeedHandler(e), map[string]any{"speed": float64(40)}); !isErr {
		t.Error("expected error for speed out of range")
	}

	if _, isErr := call(t, setModeHandler(e), map[string]any{"mode": "never_open"}); isErr {
		t.Fatal("set_mode failed")
	}
	if e.Snapshot().Mode != domain.ModeNeverOpen {
		t.Errorf("mode = %s", e.Snapshot().Mode)
	}
}

func TestScheduleAndFlow(t *testing.T) {
	e := testEngine(t)

	text, isErr := call(t, scheduleHandler(e), map[string]any{"email_id": "2", "day": float64(5)})
	if isErr || !strings.Contains(text, "queued for day 5") {
		t.Fatalf("schedule = %q (error %v)", text, isErr)
	}
	text, _ = call(t, statusHandler(e), nil)
	if !strings.Contains(text, "email 2 on day 5") {
		t.Errorf("status = %q", text)
	}

	text, _ = call(t, flowHandler(e), nil)
	if !strings.Contains(text, "Methodologies") || !strings.Contains(text, "pending") {
		t.Errorf("flow = %q", text)
	}
}

func TestTimelineLimit(t *testing.T) {
	e := testEngine(t)
	for range 3 {
		e.Advance()
	}
	text, _ := call(t, timelineHandler(e), map[string]any{"limit": float64(1)})
	if lines := strings.Count(text, "\n"); lines != 1 {
		t.Errorf("timeline has %d lines, want 1: %q", lines, text)
	}
}

func TestAutoplayToggle(t *testing.T) {
	e := testEngine(t)
	if _, isErr := call(t, autoplayHandler(e), map[string]any{"enabled": true}); isErr {
		t.Fatal("autoplay start failed")
	}
	if !e.Snapshot().Autoplay {
		t.Error("autoplay should be on")
	}
	call(t, autoplayHandler(e), map[string]any{"enabled": false})
	if e.Snapshot().Autoplay {
		t.Error("autoplay should be off")
	}
}
