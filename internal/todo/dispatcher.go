package todo

import (
	"fmt"
	"io"
	"log/slog"
)

// Store persists the durable subset of the items.
type Store interface {
	Load() ([]Record, error)
	Save(records []Record) error
}

// Dispatcher is the only writer of the State. It applies one intent at a
// time, runs the follow-on intents that intent emits in emission order and
// talks to the Store for Save and Reload.
type Dispatcher struct {
	state  State
	store  Store
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for intent tracing.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher loads the initial state from store. A missing or unreadable
// store yields an empty list.
func NewDispatcher(store Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.state = State{items: d.load()}
	return d
}

// State returns a snapshot of the current state.
func (d *Dispatcher) State() State {
	return d.state.clone()
}

// Dispatch applies in and everything it emits. The result reports whether in
// was recognised; unrecognised intents are logged and left for another
// handler. A failed save aborts the remaining follow-ons.
func (d *Dispatcher) Dispatch(in Intent) (bool, error) {
	queue := []Intent{in}
	handled := false
	for n := 0; len(queue) > 0; n++ {
		cur := queue[0]
		queue = queue[1:]

		ok, next, err := d.step(cur)
		if n == 0 {
			handled = ok
		}
		if err != nil {
			return handled, fmt.Errorf("%s: %w", cur.Kind, err)
		}
		queue = append(queue, next...)
	}
	return handled, nil
}

func (d *Dispatcher) step(in Intent) (bool, []Intent, error) {
	next, follow, ok := Reduce(d.state, in)
	if !ok {
		d.logger.Warn("intent forwarded", "intent", in.String())
		return false, nil, nil
	}
	d.logger.Debug("intent", "intent", in.String(), "emits", len(follow))
	d.state = next

	switch in.Kind {
	case KindSave:
		if err := d.store.Save(d.state.Records()); err != nil {
			d.logger.Error("save failed", "err", err)
			return true, nil, err
		}
	case KindReload:
		draft := d.state.draft
		d.state = State{items: d.load(), draft: draft}
	}

	if err := d.state.Check(); err != nil {
		d.logger.Error("selection invariant broken", "intent", in.String(), "err", err)
	}
	return true, follow, nil
}

func (d *Dispatcher) load() []Item {
	records, err := d.store.Load()
	if err != nil {
		d.logger.Warn("load failed, starting empty", "err", err)
		return nil
	}
	return NewState(records).items
}
