package domain

import (
	"fmt"
	"sort"
)

// EmailNode is one step of a program's journey
type EmailNode struct {
	ID            EmailID
	Kind          Kind
	Subject       string
	Description   string
	HTMLFile      string
	SequenceIndex int
}

// IsMain reports whether the node is a main campaign message
func (n EmailNode) IsMain() bool {
	return n.Kind == KindMain
}

// IsReminder reports whether the node is a reminder
func (n EmailNode) IsReminder() bool {
	return n.Kind == KindReminder
}

// Program is an immutable, ordered email journey identified by a key (e.g. "pm")
type Program struct {
	Key         string
	Name        string
	Description string

	nodes []EmailNode
	byID  map[EmailID]int
}

// NewProgram builds a program from nodes in catalog order and validates it.
// Sequence indexes are assigned from the slice order.
func NewProgram(key, name, description string, nodes []EmailNode) (*Program, error) {
	if key == "" {
		return nil, fmt.Errorf("program key is required")
	}
	p := &Program{
		Key:         key,
		Name:        name,
		Description: description,
		nodes:       make([]EmailNode, len(nodes)),
		byID:        make(map[EmailID]int, len(nodes)),
	}
	for i, n := range nodes {
		n.SequenceIndex = i
		p.nodes[i] = n
		if _, dup := p.byID[n.ID]; dup {
			return nil, fmt.Errorf("program %s: duplicate email ID %s", key, n.ID)
		}
		p.byID[n.ID] = i
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("program %s: %w", key, err)
	}
	return p, nil
}

func (p *Program) validate() error {
	if len(p.nodes) == 0 {
		return fmt.Errorf("no emails defined")
	}

	mains := map[int]int{}
	reminders := map[int][]EmailNode{}
	for _, n := range p.nodes {
		if !n.ID.Valid() {
			return fmt.Errorf("invalid email ID %q", n.ID)
		}
		if !n.Kind.Valid() {
			return fmt.Errorf("email %s: unknown kind %q", n.ID, n.Kind)
		}
		switch n.Kind {
		case KindMain:
			if n.ID.IsReminder() {
				return fmt.Errorf("email %s: main emails must use a bare number", n.ID)
			}
			mains[n.ID.Number()] = n.SequenceIndex
		case KindReminder:
			if !n.ID.IsReminder() {
				return fmt.Errorf("email %s: reminders need a generation letter", n.ID)
			}
			reminders[n.ID.Number()] = append(reminders[n.ID.Number()], n)
		}
	}
	if len(mains) == 0 {
		return fmt.Errorf("no main emails defined")
	}

	for num, chain := range reminders {
		mainIdx, ok := mains[num]
		if !ok {
			return fmt.Errorf("reminder %s has no main email %d", chain[0].ID, num)
		}
		for i, r := range chain {
			if r.SequenceIndex < mainIdx {
				return fmt.Errorf("reminder %s precedes its main email", r.ID)
			}
			// chains are contiguous from "a" so NextReminder never skips a node
			if want := rune('a' + i); r.ID.Generation() != want {
				return fmt.Errorf("reminder %s out of order: expected generation %c", r.ID, want)
			}
		}
	}
	return nil
}

// Emails returns all nodes in catalog order
func (p *Program) Emails() []EmailNode {
	out := make([]EmailNode, len(p.nodes))
	copy(out, p.nodes)
	return out
}

// Mains returns the main nodes in catalog order
func (p *Program) Mains() []EmailNode {
	var out []EmailNode
	for _, n := range p.nodes {
		if n.IsMain() {
			out = append(out, n)
		}
	}
	return out
}

// Node looks up a node by ID
func (p *Program) Node(id EmailID) (EmailNode, bool) {
	i, ok := p.byID[id]
	if !ok {
		return EmailNode{}, false
	}
	return p.nodes[i], true
}

// FirstMain returns the main email a fresh journey starts with
func (p *Program) FirstMain() (EmailNode, bool) {
	for _, n := range p.nodes {
		if n.IsMain() {
			return n, true
		}
	}
	return EmailNode{}, false
}

// NextMain returns the main node with the smallest sequence index greater
// than id's. The second result is false when id is unknown or terminal.
func (p *Program) NextMain(id EmailID) (EmailNode, bool) {
	i, ok := p.byID[id]
	if !ok {
		return EmailNode{}, false
	}
	for _, n := range p.nodes[i+1:] {
		if n.IsMain() {
			return n, true
		}
	}
	return EmailNode{}, false
}

// ReminderFor returns the first-generation reminder of a main email
func (p *Program) ReminderFor(mainID EmailID) (EmailNode, bool) {
	if mainID.IsReminder() {
		return EmailNode{}, false
	}
	next, ok := mainID.NextGeneration()
	if !ok {
		return EmailNode{}, false
	}
	n, ok := p.Node(next)
	if !ok || !n.IsReminder() {
		return EmailNode{}, false
	}
	return n, true
}

// NextReminder returns the reminder with the next generation letter for the
// same main. The second result is false when the chain ends.
func (p *Program) NextReminder(reminderID EmailID) (EmailNode, bool) {
	if !reminderID.IsReminder() {
		return EmailNode{}, false
	}
	next, ok := reminderID.NextGeneration()
	if !ok {
		return EmailNode{}, false
	}
	n, ok := p.Node(next)
	if !ok || !n.IsReminder() {
		return EmailNode{}, false
	}
	return n, true
}

// Catalog holds the programs available to the simulator
type Catalog struct {
	programs map[string]*Program
}

// NewCatalog builds a catalog, rejecting duplicate keys
func NewCatalog(programs ...*Program) (*Catalog, error) {
	c := &Catalog{programs: make(map[string]*Program, len(programs))}
	for _, p := range programs {
		if _, dup := c.programs[p.Key]; dup {
			return nil, fmt.Errorf("duplicate program key %q", p.Key)
		}
		c.programs[p.Key] = p
	}
	if len(c.programs) == 0 {
		return nil, fmt.Errorf("catalog has no programs")
	}
	return c, nil
}

// Program looks up a program by key
func (c *Catalog) Program(key string) (*Program, bool) {
	p, ok := c.programs[key]
	return p, ok
}

// Keys returns the program keys sorted alphabetically
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.programs))
	for k := range c.programs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
