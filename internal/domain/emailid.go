package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags an email node as a main campaign message or a reminder
type Kind string

const (
	KindMain     Kind = "main"
	KindReminder Kind = "reminder"
)

func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known node kinds
func (k Kind) Valid() bool {
	return k == KindMain || k == KindReminder
}

// EmailID identifies a node within a program.
// Mains are bare sequence numbers ("1", "2"); reminders carry a
// generation letter after the number of the main they follow ("1a", "1b").
type EmailID string

var emailIDRegex = regexp.MustCompile(`^([1-9][0-9]*)([a-z]?)$`)

// ParseEmailID validates and normalizes an email identifier
func ParseEmailID(s string) (EmailID, error) {
	s = strings.TrimSpace(s)
	if !emailIDRegex.MatchString(s) {
		return "", fmt.Errorf("invalid email ID: %q", s)
	}
	return EmailID(s), nil
}

// MainID builds the identifier of main email n
func MainID(n int) EmailID {
	return EmailID(strconv.Itoa(n))
}

// ReminderID builds the identifier of reminder generation gen after main n
func ReminderID(n int, gen rune) EmailID {
	return EmailID(fmt.Sprintf("%d%c", n, gen))
}

func (id EmailID) String() string {
	return string(id)
}

// Valid reports whether id has the main or reminder form
func (id EmailID) Valid() bool {
	return emailIDRegex.MatchString(string(id))
}

// Number returns the numeric prefix, or 0 for a malformed ID
func (id EmailID) Number() int {
	m := emailIDRegex.FindStringSubmatch(string(id))
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// Generation returns the reminder suffix letter, or 0 for a main
func (id EmailID) Generation() rune {
	m := emailIDRegex.FindStringSubmatch(string(id))
	if m == nil || m[2] == "" {
		return 0
	}
	return rune(m[2][0])
}

// IsReminder reports whether id has a generation suffix
func (id EmailID) IsReminder() bool {
	return id.Generation() != 0
}

// Main returns the ID of the main email this ID belongs to
func (id EmailID) Main() EmailID {
	return MainID(id.Number())
}

// NextGeneration returns the reminder that would follow id in its chain.
// For a main that is generation "a"; "z" has no successor.
func (id EmailID) NextGeneration() (EmailID, bool) {
	if !id.Valid() {
		return "", false
	}
	gen := id.Generation()
	switch {
	case gen == 0:
		return ReminderID(id.Number(), 'a'), true
	case gen == 'z':
		return "", false
	default:
		return ReminderID(id.Number(), gen+1), true
	}
}
