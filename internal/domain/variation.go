package domain

import (
	"fmt"
	"strings"
)

// VariationKind selects how presentation text is derived from a node
type VariationKind string

const (
	VariationNone     VariationKind = ""
	VariationReminder VariationKind = "reminder"
	VariationUrgent   VariationKind = "urgent"
	VariationFollowup VariationKind = "followup"
)

var subjectPrefixes = map[VariationKind][]string{
	VariationReminder: {"Reminder: ", "Don't Miss: ", "Last Chance: ", "Final Notice: "},
	VariationUrgent:   {"URGENT: ", "TIME-SENSITIVE: ", "ACTION REQUIRED: ", "FINAL HOURS: "},
	VariationFollowup: {"Follow-up: ", "Quick Follow-up: ", "Checking in: "},
}

type ctaRewrite struct {
	from, to string
}

var ctaRewrites = map[VariationKind][]ctaRewrite{
	VariationReminder: {
		{"Learn More", "Don't Miss Out - Learn More"},
		{"Enroll Now", "Last Chance - Enroll Now"},
		{"Get Started", "Act Now - Get Started"},
		{"Sign Up", "Join Today - Sign Up"},
	},
	VariationUrgent: {
		{"Learn More", "URGENT - Learn More"},
		{"Enroll Now", "DEADLINE APPROACHING - Enroll Now"},
		{"Get Started", "FINAL HOURS - Get Started"},
	},
}

var reminderBadges = []string{"Reminder", "Second Notice", "Final Notice"}

// Variation derives presentation text from an EmailNode without touching
// its identity or scheduling fields. Index picks the prefix and badge for
// repeated variations (0 is the first).
type Variation struct {
	Kind  VariationKind
	Index int
}

// VariationFor returns the variation a node is displayed with: reminders
// use the reminder variation indexed by generation, mains use none.
func VariationFor(n EmailNode) Variation {
	if !n.IsReminder() {
		return Variation{}
	}
	gen := n.ID.Generation()
	return Variation{Kind: VariationReminder, Index: int(gen - 'a')}
}

func pick(list []string, i int) string {
	if len(list) == 0 {
		return ""
	}
	if i < 0 {
		i = 0
	}
	if i >= len(list) {
		i = len(list) - 1
	}
	return list[i]
}

// Subject applies the variation prefix to subject. A subject that already
// carries a known prefix is left alone.
func (v Variation) Subject(subject string) string {
	prefixes := subjectPrefixes[v.Kind]
	if len(prefixes) == 0 {
		return subject
	}
	for _, p := range prefixes {
		if strings.HasPrefix(subject, p) || strings.HasPrefix(subject, strings.TrimSuffix(p, ": ")+" - ") {
			return subject
		}
	}
	return pick(prefixes, v.Index) + subject
}

// Badge returns the notice label shown on a reminder, empty otherwise
func (v Variation) Badge() string {
	if v.Kind != VariationReminder {
		return ""
	}
	return pick(reminderBadges, v.Index)
}

// RewriteHTML rewrites call-to-action labels in an HTML body
func (v Variation) RewriteHTML(html string) string {
	rewrites := ctaRewrites[v.Kind]
	if len(rewrites) == 0 {
		return html
	}
	pairs := make([]string, 0, len(rewrites)*2)
	for _, r := range rewrites {
		pairs = append(pairs, ">"+r.from+"<", ">"+r.to+"<")
	}
	out := strings.NewReplacer(pairs...).Replace(html)
	if badge := v.Badge(); badge != "" && !strings.Contains(out, `class="variation-badge"`) {
		banner := fmt.Sprintf(`<div class="variation-badge">%s</div>`, badge)
		if i := strings.Index(out, "<body>"); i >= 0 {
			i += len("<body>")
			out = out[:i] + banner + out[i:]
		} else {
			out = banner + out
		}
	}
	return out
}
