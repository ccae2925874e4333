package sqlite

import (
	"context"
	"database/sql"
	"time"

	"dripsim/internal/domain"
)

// runTx writes one run and its rows
type runTx struct {
	tx *sql.Tx
}

func (t *runTx) insertRun(ctx context.Context, snap domain.Snapshot) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO runs (program, mode, speed, day,
			branch_main, branch_reminder, branch_conversion, branch_cold_leads,
			total, opened, clicked, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.Program, string(snap.Mode), int(snap.Speed), snap.Day,
		snap.Branches.Main, snap.Branches.Reminder, snap.Branches.Conversion, snap.Branches.ColdLeads,
		snap.InboxStats.Total, snap.InboxStats.Opened, snap.InboxStats.Clicked, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (t *runTx) insertRows(ctx context.Context, runID int64, snap domain.Snapshot) error {
	msgStmt, err := t.tx.PrepareContext(ctx, `
		INSERT INTO messages (run_id, instance_id, email_id, sent_on_day, status, opened_on_day, clicked_on_day)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer msgStmt.Close()
	for _, m := range snap.Inbox {
		if _, err := msgStmt.ExecContext(ctx, runID, m.InstanceID, m.EmailID.String(), m.SentOnDay,
			string(m.Status), dayOrNull(m.Engagement.Opened, m.Engagement.OpenedOnDay),
			dayOrNull(m.Engagement.Clicked, m.Engagement.ClickedOnDay)); err != nil {
			return err
		}
	}

	tlStmt, err := t.tx.PrepareContext(ctx, `
		INSERT INTO timeline (run_id, seq, day, title, description) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer tlStmt.Close()
	// snapshot timelines are newest first; store them oldest first
	n := len(snap.Timeline)
	for i := range snap.Timeline {
		e := snap.Timeline[n-1-i]
		if _, err := tlStmt.ExecContext(ctx, runID, i, e.Day, e.Title, e.Description); err != nil {
			return err
		}
	}

	dayStmt, err := t.tx.PrepareContext(ctx, `
		INSERT INTO daily_stats (run_id, day, sent, opened, clicked) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer dayStmt.Close()
	for _, d := range snap.Days {
		if _, err := dayStmt.ExecContext(ctx, runID, d.Day, d.Sent, d.Opened, d.Clicked); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *runTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *runTx) Rollback() error {
	return t.tx.Rollback()
}

func dayOrNull(set bool, day int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(day), Valid: set}
}
