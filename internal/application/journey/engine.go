// Package journey implements the drip-campaign state machine: the simulated
// calendar, the scheduled-send queue, the inbox with its engagement records,
// branch statistics, the journey log and autoplay.
package journey

import (
	"context"
	"fmt"
	"io"
	"log"
	"maps"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"dripsim/internal/application"
	"dripsim/internal/domain"
	"dripsim/internal/ports"
)

var _ ports.JourneyEngine = (*Engine)(nil)

// Config holds the tunables of an engine
type Config struct {
	BaseInterval time.Duration
	Speed        domain.Speed
	Mode         domain.BehaviorMode
	TimelineCap  int
	// Relaxed turns engagement on unknown instance ids into a no-op
	Relaxed bool
	// Seed fixes the behavior draws; 0 seeds from the OS
	Seed uint64
}

func (c Config) withDefaults() Config {
	if c.BaseInterval <= 0 {
		c.BaseInterval = domain.DefaultBaseInterval
	}
	if c.Speed == 0 {
		c.Speed = domain.DefaultSpeed
	}
	c.Speed = c.Speed.Clamp()
	if _, err := domain.ParseBehaviorMode(string(c.Mode)); err != nil {
		c.Mode = domain.DefaultMode
	}
	if c.TimelineCap <= 0 {
		c.TimelineCap = domain.DefaultTimelineCap
	}
	return c
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the clock that drives autoplay and behavior delays
func WithClock(c ports.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the engine logger
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithIDGenerator replaces the instance id generator
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithRand replaces the source of behavior draws; fn returns values in [0, 1)
func WithRand(fn func() float64) Option {
	return func(e *Engine) {
		if fn != nil {
			e.rnd = fn
		}
	}
}

// WithConfig sets the engine tunables
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// Engine is the journey state machine. A single mutex guards the whole
// state bundle so a tick and an engagement mark never interleave.
// Listeners are notified after every mutating call, outside the lock.
type Engine struct {
	catalog   *domain.Catalog
	templates *application.TemplateLibrary
	clock     ports.Clock
	logger    *log.Logger
	newID     func() string
	rnd       func() float64
	cfg       Config

	mu         sync.Mutex
	program    *domain.Program
	day        int
	scheduled  map[int][]domain.EmailID
	queued     map[domain.EmailID]int
	sent       map[domain.EmailID]bool
	inbox      []*domain.InboxMessage
	byInstance map[string]*domain.InboxMessage
	engagement map[string]*domain.Engagement
	counters   domain.BranchCounters
	timeline   *domain.Timeline
	days       map[int]*domain.DayStats
	speed      domain.Speed
	mode       domain.BehaviorMode
	version    uint64

	autoplay bool
	ticker   ports.Ticker
	// playGen invalidates ticks from a stopped or replaced ticker
	playGen uint64
	// runGen invalidates behavior timers from before the last reset
	runGen  uint64
	pending map[*behaviorTimer]struct{}

	subMu   sync.Mutex
	subs    map[int]func(domain.Snapshot)
	nextSub int
}

// New creates an engine on programKey and performs the initial reset.
// templates may be nil, in which case previews are placeholders.
func New(ctx context.Context, catalog *domain.Catalog, templates *application.TemplateLibrary, programKey string, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	e := &Engine{
		catalog:   catalog,
		templates: templates,
		logger:    log.New(io.Discard, "", 0),
		newID:     uuid.NewString,
		subs:      make(map[int]func(domain.Snapshot)),
		pending:   make(map[*behaviorTimer]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		return nil, fmt.Errorf("clock is required")
	}
	if e.templates == nil {
		e.templates = application.NewTemplateLibrary(nil)
	}
	e.cfg = e.cfg.withDefaults()
	if e.rnd == nil {
		e.rnd = newRand(e.cfg.Seed)
	}
	e.speed = e.cfg.Speed
	e.mode = e.cfg.Mode
	e.timeline = domain.NewTimeline(e.cfg.TimelineCap)

	p, ok := catalog.Program(programKey)
	if !ok {
		return nil, &application.UnknownProgramError{Key: programKey}
	}
	e.templates.Load(ctx, p)

	e.mu.Lock()
	e.program = p
	e.resetLocked()
	e.mu.Unlock()
	return e, nil
}

func newRand(seed uint64) func() float64 {
	if seed == 0 {
		return rand.Float64
	}
	return rand.New(rand.NewPCG(seed, seed)).Float64
}

// Catalog returns the programs the engine can switch between
func (e *Engine) Catalog() *domain.Catalog {
	return e.catalog
}

// Program returns the active program
func (e *Engine) Program() *domain.Program {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.program
}

// Subscribe registers fn for state-changed notifications and returns a
// function that removes it. fn runs on the goroutine that made the change
// and must not block.
func (e *Engine) Subscribe(fn func(domain.Snapshot)) func() {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		delete(e.subs, id)
	}
}

// commit bumps the version, captures a snapshot and releases the lock,
// then notifies listeners. It must be called with e.mu held.
func (e *Engine) commit() {
	e.version++
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.subMu.Lock()
	fns := slices.Collect(maps.Values(e.subs))
	e.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// Reset stops autoplay, clears every per-run structure and schedules the
// program's first main email for day 1
func (e *Engine) Reset() {
	e.mu.Lock()
	e.resetLocked()
	e.commit()
}

// SwitchProgram loads key's templates and resets onto it. An unknown key
// leaves the engine untouched.
func (e *Engine) SwitchProgram(ctx context.Context, key string) error {
	p, ok := e.catalog.Program(key)
	if !ok {
		return &application.UnknownProgramError{Key: key}
	}
	if failed := e.templates.Load(ctx, p); failed > 0 {
		e.logger.Printf("journey: switched to %s with %d placeholder templates", key, failed)
	}

	e.mu.Lock()
	e.program = p
	e.resetLocked()
	e.commit()
	return nil
}

func (e *Engine) resetLocked() {
	e.stopAutoplayLocked()
	e.cancelBehaviorLocked()

	e.day = 0
	e.scheduled = make(map[int][]domain.EmailID)
	e.queued = make(map[domain.EmailID]int)
	e.sent = make(map[domain.EmailID]bool)
	e.inbox = nil
	e.byInstance = make(map[string]*domain.InboxMessage)
	e.engagement = make(map[string]*domain.Engagement)
	e.counters = domain.BranchCounters{}
	e.days = make(map[int]*domain.DayStats)
	e.timeline.Clear()

	first, ok := e.program.FirstMain()
	if !ok {
		return
	}
	e.scheduleLocked(first.ID, 1)
	e.timeline.Add(0, "Journey Reset",
		fmt.Sprintf("Journey started - %s scheduled for Day 1", first.Subject))
}

// Schedule queues id for day. Scheduling an id that is already queued or
// already sent is a no-op that still leaves a timeline entry.
func (e *Engine) Schedule(id domain.EmailID, day int) error {
	if day < 0 {
		return &application.ValidationError{Field: "day", Message: "day must not be negative"}
	}
	e.mu.Lock()
	if _, ok := e.program.Node(id); !ok {
		key := e.program.Key
		e.mu.Unlock()
		return &application.UnknownEmailError{Program: key, EmailID: id.String()}
	}
	e.scheduleLocked(id, day)
	e.commit()
	return nil
}

func (e *Engine) scheduleLocked(id domain.EmailID, day int) {
	switch {
	case e.sent[id]:
		e.timeline.Add(e.day, "Email Scheduled",
			fmt.Sprintf("Email %s was already sent, not scheduled again", id))
	case e.isQueuedLocked(id):
		e.timeline.Add(e.day, "Email Scheduled",
			fmt.Sprintf("Email %s is already scheduled for Day %d", id, e.queued[id]))
	default:
		e.queued[id] = day
		e.scheduled[day] = append(e.scheduled[day], id)
		e.timeline.Add(e.day, "Email Scheduled",
			fmt.Sprintf("Email %s scheduled for Day %d", id, day))
	}
}

func (e *Engine) isQueuedLocked(id domain.EmailID) bool {
	_, ok := e.queued[id]
	return ok
}

func (e *Engine) dayStatsLocked(day int) *domain.DayStats {
	s, ok := e.days[day]
	if !ok {
		s = &domain.DayStats{Day: day}
		e.days[day] = s
	}
	return s
}
