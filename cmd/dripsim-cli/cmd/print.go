package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"dripsim/internal/domain"
)

var statusColors = map[domain.MessageStatus]*color.Color{
	domain.StatusUnread:  color.New(color.Faint),
	domain.StatusOpened:  color.New(color.FgCyan),
	domain.StatusClicked: color.New(color.FgGreen, color.Bold),
}

func printSummary(snap domain.Snapshot) {
	bold := color.New(color.Bold, color.Underline)
	fmt.Fprintf(color.Output, "%s\n", bold.Sprintf("%s  day %d  %s", snap.Program, snap.Day, snap.Mode))

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, b := range domain.Branches {
		tbl.AddRow(b.Label(), snap.Branches.Get(b))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println()
}

func printInbox(inbox []domain.MessageView) {
	bold := color.New(color.Bold)
	yellow := color.New(color.FgYellow)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Email"), bold.Sprint("Status"), bold.Sprint("Subject"))
	for _, m := range inbox {
		subject := m.Subject
		if m.Kind == domain.KindReminder {
			subject = yellow.Sprint(subject)
		}
		tbl.AddRow(m.SentOnDay, m.EmailID, statusColors[m.Status].Sprint(m.Status), subject)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println()
}

// printTimeline prints the newest limit entries oldest first
func printTimeline(entries []domain.TimelineEntry, limit int) {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		tbl.AddRow(faint.Sprintf("day %d", e.Day), e.Title, e.Description)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func printDays(days []domain.DayStats) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Sent"), bold.Sprint("Opened"), bold.Sprint("Clicked"), "")
	for _, d := range days {
		tbl.AddRow(d.Day, d.Sent, d.Opened, d.Clicked, strings.Repeat("▪", d.Sent))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
}
