package run

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/healthmetrics/metric"
	"github.com/ardnew/healthmetrics/model"
)

type fakeDisplay struct {
	mu      sync.Mutex
	updates []model.Model
	err     error
}

func (d *fakeDisplay) Update(data model.Model) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updates = append(d.updates, data)
	return d.err
}

func (d *fakeDisplay) snapshot() []model.Model {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Model(nil), d.updates...)
}

type fakeHealth struct{ calls int }

func (h *fakeHealth) Today(now time.Time) metric.Raw {
	h.calls++
	return metric.Raw{Steps: 1000 * h.calls}
}

func (h *fakeHealth) System() metric.System { return metric.SystemImperial }

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newRunner() (*Runner, *fakeDisplay, *fakeHealth, *fakeClock, *model.Store) {
	disp := &fakeDisplay{}
	health := &fakeHealth{}
	clk := &fakeClock{now: time.Date(2026, time.October, 17, 9, 30, 15, 0, time.UTC)}
	store := model.NewStore()
	r := New(disp, store, Sources{
		Now:      clk.Now,
		Clock24h: func() bool { return true },
		Health:   health,
		Battery:  func() model.Battery { return model.Battery{Percent: 64} },
	})
	return r, disp, health, clk, store
}

func TestStepLifecycle(t *testing.T) {
	r, disp, health, clk, store := newRunner()
	var published []model.Model
	r.OnSample = func(m model.Model) { published = append(published, m) }

	store.Set(func(m *model.Model) { m.Status = model.StatusStarting })

	r.Step()
	require.Len(t, disp.updates, 1)
	assert.Equal(t, model.StatusStarting, disp.updates[0].Status)
	assert.Equal(t, 1, health.calls)

	r.Step()
	require.Len(t, disp.updates, 2)
	got := disp.updates[1]
	assert.Equal(t, model.StatusRunning, got.Status)
	assert.Equal(t, 1000, got.Health.Steps)
	assert.Equal(t, metric.SystemImperial, got.System)
	assert.Equal(t, uint8(64), got.Battery.Percent)
	assert.True(t, got.Clock24h)
	assert.Equal(t, clk.now, got.Time)

	// same minute, nothing to do
	clk.now = clk.now.Add(30 * time.Second)
	r.Step()
	r.Step()
	assert.Len(t, disp.updates, 2)
	assert.Equal(t, 1, health.calls)

	// minute tick samples, then redraws
	clk.now = clk.now.Add(30 * time.Second)
	r.Step()
	assert.Equal(t, 2, health.calls)
	r.Step()
	require.Len(t, disp.updates, 3)
	assert.Equal(t, 2000, disp.updates[2].Health.Steps)

	assert.Len(t, published, 2)
}

func TestStepRedrawsOnConnectionChange(t *testing.T) {
	r, disp, _, _, store := newRunner()
	store.Set(func(m *model.Model) { m.Status = model.StatusStarting })
	r.Step()
	r.Step()
	require.Len(t, disp.updates, 2)

	store.Set(func(m *model.Model) { m.Connected = true })
	r.Step()
	require.Len(t, disp.updates, 3)
	assert.True(t, disp.updates[2].Connected)
	assert.Equal(t, model.StatusRunning, disp.updates[2].Status)
}

func TestStepIdleDoesNothing(t *testing.T) {
	r, disp, health, _, _ := newRunner()
	r.Step()
	assert.Empty(t, disp.updates)
	assert.Zero(t, health.calls)
}

func TestStepDisplayErrorContinues(t *testing.T) {
	r, disp, _, _, store := newRunner()
	disp.err = errors.New("bus fault")
	store.Set(func(m *model.Model) { m.Status = model.StatusStarting })
	r.Step()
	r.Step()
	assert.Len(t, disp.updates, 2)
}

func TestNewDefaults(t *testing.T) {
	r := New(&fakeDisplay{}, model.NewStore(), Sources{})
	assert.Equal(t, DefaultPoll, r.Poll)
	assert.False(t, r.src.Clock24h())
	assert.Equal(t, uint8(100), r.src.Battery().Percent)
	assert.WithinDuration(t, time.Now(), r.src.Now(), time.Minute)
}

func TestRunStopsOnCancel(t *testing.T) {
	r, disp, _, _, _ := newRunner()
	r.Poll = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(disp.snapshot()) >= 2
	}, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	updates := disp.snapshot()
	assert.Equal(t, model.StatusStarting, updates[0].Status)
	assert.Equal(t, model.StatusRunning, updates[1].Status)
	assert.Equal(t, model.StatusStopped, updates[len(updates)-1].Status)
}
