package notify

import (
	"sort"
	"sync"
	"time"
)

// Kinds
const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultLifetime is how long a notification stays up.
const DefaultLifetime = 3 * time.Second

type Kind string

type (
	// Notifier is the UI feedback surface used by workflows.
	// Notify is fire-and-forget; Confirm blocks until the user decides.
	Notifier interface {
		Notify(kind Kind, msg string)
		Confirm(msg string) bool
	}

	// Sink displays a notification as it is posted.
	Sink interface {
		Show(n Notification)
	}

	// Prompter asks the user a yes/no question.
	Prompter interface {
		Ask(question string) bool
	}

	Notification struct {
		ID        uint64
		Kind      Kind
		Message   string
		CreatedAt time.Time
	}
)

// Center keeps the live notifications and removes each one after its lifetime.
type Center struct {
	sink     Sink
	prompter Prompter
	lifetime time.Duration

	mu     sync.Mutex
	seq    uint64
	active map[uint64]Notification
	timers map[uint64]*time.Timer
}

var _ Notifier = (*Center)(nil)

func NewCenter(sink Sink, prompter Prompter, lifetime time.Duration) *Center {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Center{
		sink:     sink,
		prompter: prompter,
		lifetime: lifetime,
		active:   make(map[uint64]Notification),
		timers:   make(map[uint64]*time.Timer),
	}
}

func (c *Center) Notify(kind Kind, msg string) {
	c.mu.Lock()
	c.seq++
	n := Notification{ID: c.seq, Kind: kind, Message: msg, CreatedAt: time.Now()}
	c.active[n.ID] = n
	c.timers[n.ID] = time.AfterFunc(c.lifetime, func() { c.dismiss(n.ID) })
	c.mu.Unlock()

	if c.sink != nil {
		c.sink.Show(n)
	}
}

func (c *Center) Info(msg string)    { c.Notify(KindInfo, msg) }
func (c *Center) Success(msg string) { c.Notify(KindSuccess, msg) }
func (c *Center) Error(msg string)   { c.Notify(KindError, msg) }

// Confirm asks the prompter; without one, nothing destructive is confirmed.
func (c *Center) Confirm(msg string) bool {
	if c.prompter == nil {
		return false
	}
	return c.prompter.Ask(msg)
}

// Active lists the notifications still up, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, 0, len(c.active))
	for _, n := range c.active {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Close stops pending timers and drops everything.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
		delete(c.active, id)
	}
}

func (c *Center) dismiss(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[id]; ok {
		t.Stop()
	}
	delete(c.active, id)
	delete(c.timers, id)
}
