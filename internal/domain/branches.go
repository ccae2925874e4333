package domain

// Branch names an outcome category of the journey statistics
type Branch string

const (
	BranchMain       Branch = "main"
	BranchReminder   Branch = "reminder"
	BranchConversion Branch = "conversion"
	BranchColdLeads  Branch = "cold_leads"
)

// Branches lists every branch in display order
var Branches = []Branch{BranchMain, BranchReminder, BranchConversion, BranchColdLeads}

// Label returns the branch name for display ("cold leads")
func (b Branch) Label() string {
	if b == BranchColdLeads {
		return "cold leads"
	}
	return string(b)
}

// BranchCounters are display-only tallies; scheduling never reads them
type BranchCounters struct {
	Main       int `json:"main"`
	Reminder   int `json:"reminder"`
	Conversion int `json:"conversion"`
	ColdLeads  int `json:"cold_leads"`
}

// Inc bumps the counter for b
func (c *BranchCounters) Inc(b Branch) {
	switch b {
	case BranchMain:
		c.Main++
	case BranchReminder:
		c.Reminder++
	case BranchConversion:
		c.Conversion++
	case BranchColdLeads:
		c.ColdLeads++
	}
}

// Get returns the counter for b
func (c BranchCounters) Get(b Branch) int {
	switch b {
	case BranchMain:
		return c.Main
	case BranchReminder:
		return c.Reminder
	case BranchConversion:
		return c.Conversion
	case BranchColdLeads:
		return c.ColdLeads
	default:
		return 0
	}
}

// Total sums all counters
func (c BranchCounters) Total() int {
	return c.Main + c.Reminder + c.Conversion + c.ColdLeads
}

// Share returns b's fraction of the total in [0, 1]
func (c BranchCounters) Share(b Branch) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Get(b)) / float64(total)
}
