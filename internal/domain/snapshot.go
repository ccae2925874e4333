package domain

// Snapshot is an immutable copy of the engine state handed to presentation.
// Version grows with every mutation so consumers can drop stale copies.
type Snapshot struct {
	Version    uint64           `json:"version"`
	Program    string           `json:"program"`
	Day        int              `json:"day"`
	Speed      Speed            `json:"speed"`
	Mode       BehaviorMode     `json:"mode"`
	Autoplay   bool             `json:"autoplay"`
	Inbox      []MessageView    `json:"inbox"`
	Scheduled  []ScheduledEntry `json:"scheduled"`
	Timeline   []TimelineEntry  `json:"timeline"`
	Branches   BranchCounters   `json:"branches"`
	InboxStats InboxStats       `json:"inbox_stats"`
	Days       []DayStats       `json:"days"`
}

// Message finds an inbox row by instance id
func (s Snapshot) Message(instanceID string) (MessageView, bool) {
	for _, m := range s.Inbox {
		if m.InstanceID == instanceID {
			return m, true
		}
	}
	return MessageView{}, false
}

// EmailPreview is the rendered view of one sent message
type EmailPreview struct {
	InstanceID string        `json:"instance_id"`
	EmailID    EmailID       `json:"email_id"`
	Kind       Kind          `json:"kind"`
	Subject    string        `json:"subject"`
	Badge      string        `json:"badge,omitempty"`
	Timing     string        `json:"timing"`
	Status     MessageStatus `json:"status"`
	HTML       string        `json:"html"`
}

// FlowStep is one node of the journey flow annotated with its send state
type FlowStep struct {
	EmailID EmailID       `json:"email_id"`
	Subject string        `json:"subject"`
	Sent    bool          `json:"sent"`
	Status  MessageStatus `json:"status"`
}

// FlowNode pairs a main email with its first reminder
type FlowNode struct {
	Main     FlowStep  `json:"main"`
	Reminder *FlowStep `json:"reminder,omitempty"`
}
