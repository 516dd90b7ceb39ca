// Package run implements the event loop driving the watchface.
package run

import (
	"context"
	"time"

	"github.com/ardnew/healthmetrics/metric"
	"github.com/ardnew/healthmetrics/model"
)

// DefaultPoll is the interval at which the loop checks for changes.
const DefaultPoll = 100 * time.Millisecond

// Display receives the Model data each time it changes.
type Display interface {
	Update(data model.Model) error
}

// Health provides today's health totals.
type Health interface {
	Today(now time.Time) metric.Raw
	System() metric.System
}

// Sources are the queries sampled once per minute.
type Sources struct {
	Now      func() time.Time
	Clock24h func() bool
	Health   Health
	Battery  func() model.Battery
}

// Runner advances the watchface lifecycle and refreshes the Model on each
// minute tick.
type Runner struct {
	disp  Display
	store *model.Store
	src   Sources
	last  time.Time // minute of the most recent sample

	// OnSample, if non-nil, is called with the Model after each sample.
	OnSample func(model.Model)
	// Poll is the sleep between iterations of Run.
	Poll time.Duration
}

// New returns a new Runner rendering the Model in store onto disp.
func New(disp Display, store *model.Store, src Sources) *Runner {
	if src.Now == nil {
		src.Now = time.Now
	}
	if src.Clock24h == nil {
		src.Clock24h = func() bool { return false }
	}
	if src.Battery == nil {
		src.Battery = func() model.Battery { return model.Battery{Percent: 100} }
	}
	return &Runner{disp: disp, store: store, src: src, Poll: DefaultPoll}
}

// Run starts the watchface and iterates until ctx is cancelled, after which the
// display is cleared.
func (r *Runner) Run(ctx context.Context) {

	// initial state
	r.store.Set(func(m *model.Model) {
		m.Status = model.StatusStarting
	})

	// main run loop
	for {
		select {
		case <-ctx.Done():
			r.store.Set(func(m *model.Model) {
				m.Status = model.StatusStopped
			})
			r.Step()
			return
		default:
		}
		r.Step()
		time.Sleep(r.Poll)
	}
}

// Step performs a single iteration of the run loop.
func (r *Runner) Step() {
	if changed, data := r.store.Get(); changed {

		// something in the Model has changed. update the display with current
		// Model data, and then perform any transition logic.

		if err := r.disp.Update(data); nil != err {
			println("error: " + err.Error())
		}
		if data.Status == model.StatusStarting {
			// populate the face right away rather than on the first tick
			r.sample(model.StatusRunning)
		}

	} else if data.Status == model.StatusRunning {

		// nothing has changed. refresh the Model once the minute rolls over,
		// which will update the display on the next iteration.

		if minute := r.src.Now().Truncate(time.Minute); !minute.Equal(r.last) {
			r.sample(model.StatusRunning)
		}
	}
}

func (r *Runner) sample(status model.Status) {
	now := r.src.Now()
	var (
		raw    metric.Raw
		system metric.System
	)
	if r.src.Health != nil {
		raw, system = r.src.Health.Today(now), r.src.Health.System()
	}
	bat := r.src.Battery()
	h24 := r.src.Clock24h()

	r.last = now.Truncate(time.Minute)
	r.store.Set(func(m *model.Model) {
		m.Time, m.Clock24h = now, h24
		m.Health, m.System = raw, system
		m.Battery = bat
		m.Status = status
	})
	if r.OnSample != nil {
		r.OnSample(r.store.Peek())
	}
}
