package domain

// DefaultTimelineCap bounds the journey log
const DefaultTimelineCap = 100

// TimelineEntry is one line of the journey log
type TimelineEntry struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Timeline is an append-only log that keeps the newest entries up to its
// capacity. Entries are stored oldest first and returned newest first.
type Timeline struct {
	entries  []TimelineEntry
	capacity int
}

// NewTimeline creates a timeline; a non-positive capacity uses the default
func NewTimeline(capacity int) *Timeline {
	if capacity <= 0 {
		capacity = DefaultTimelineCap
	}
	return &Timeline{capacity: capacity}
}

// Add appends an entry, evicting the oldest one when full
func (t *Timeline) Add(day int, title, description string) {
	t.entries = append(t.entries, TimelineEntry{Day: day, Title: title, Description: description})
	if over := len(t.entries) - t.capacity; over > 0 {
		t.entries = append(t.entries[:0], t.entries[over:]...)
	}
}

// Entries returns a copy of the log, newest first
func (t *Timeline) Entries() []TimelineEntry {
	out := make([]TimelineEntry, len(t.entries))
	for i, e := range t.entries {
		out[len(t.entries)-1-i] = e
	}
	return out
}

// Len returns the number of retained entries
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Clear drops every entry
func (t *Timeline) Clear() {
	t.entries = t.entries[:0]
}
