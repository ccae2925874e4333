package domain

// InboxMessage is one delivered email. InstanceID is unique per send and
// never equal to the EmailID it was created from.
type InboxMessage struct {
	InstanceID string
	EmailID    EmailID
	SentOnDay  int
	Processed  bool
}

// WaitDays is how long a message may go unengaged before the journey
// branches past it
const WaitDays = 30

// Idle reports whether msg has gone unengaged long enough to branch on day.
// The threshold is inclusive.
func (m InboxMessage) Idle(day int) bool {
	return day-m.SentOnDay >= WaitDays
}

// ScheduledEntry is a pending send
type ScheduledEntry struct {
	EmailID   EmailID `json:"email_id"`
	TargetDay int     `json:"target_day"`
}

// MessageView is the read-only inbox row handed to presentation
type MessageView struct {
	InstanceID string        `json:"instance_id"`
	EmailID    EmailID       `json:"email_id"`
	Kind       Kind          `json:"kind"`
	Subject    string        `json:"subject"`
	SentOnDay  int           `json:"sent_on_day"`
	Processed  bool          `json:"processed"`
	Engagement Engagement    `json:"engagement"`
	Status     MessageStatus `json:"status"`
}

// InboxStats are the counters shown above the inbox list
type InboxStats struct {
	Total   int `json:"total"`
	Opened  int `json:"opened"`
	Clicked int `json:"clicked"`
}

// DayStats tallies what happened on one simulated day
type DayStats struct {
	Day     int `json:"day"`
	Sent    int `json:"sent"`
	Opened  int `json:"opened"`
	Clicked int `json:"clicked"`
}
