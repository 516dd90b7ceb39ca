package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ardnew/healthmetrics/metric"
)

type fakeCounter struct{ steps uint32 }

func (c *fakeCounter) Steps() uint32 { return c.steps }

func clock(day, hour, min, sec int) time.Time {
	return time.Date(2026, time.October, day, hour, min, sec, 0, time.UTC)
}

func TestNewDefaults(t *testing.T) {
	tr := New(&fakeCounter{}, Config{System: metric.SystemImperial})
	assert.Equal(t, DefaultStrideCm, tr.config.StrideCm)
	assert.Equal(t, DefaultWeightKg, tr.config.WeightKg)
	assert.Equal(t, DefaultRestingKcalPerDay, tr.config.RestingKcalPerDay)
	assert.Equal(t, DefaultActiveCadence, tr.config.ActiveCadence)
	assert.Equal(t, metric.SystemImperial, tr.System())
}

func TestTodayFirstSample(t *testing.T) {
	c := &fakeCounter{steps: 500}
	tr := New(c, Config{})

	got := tr.Today(clock(7, 8, 0, 0))
	assert.Equal(t, metric.Raw{
		Steps:         500,
		ActiveSeconds: 0,
		WalkedMeters:  370,
		ActiveKcal:    19,
		RestingKcal:   533,
	}, got)
}

func TestTodayAccumulates(t *testing.T) {
	c := &fakeCounter{steps: 500}
	tr := New(c, Config{})
	tr.Today(clock(7, 8, 0, 0))

	// brisk minute
	c.steps = 600
	got := tr.Today(clock(7, 8, 1, 0))
	assert.Equal(t, 600, got.Steps)
	assert.Equal(t, 60, got.ActiveSeconds)

	// idle minute
	c.steps = 620
	got = tr.Today(clock(7, 8, 2, 0))
	assert.Equal(t, 620, got.Steps)
	assert.Equal(t, 60, got.ActiveSeconds)

	// sensor reset
	c.steps = 50
	got = tr.Today(clock(7, 8, 3, 0))
	assert.Equal(t, 670, got.Steps)
	assert.Equal(t, 120, got.ActiveSeconds)
}

func TestTodaySameInstant(t *testing.T) {
	c := &fakeCounter{steps: 10}
	tr := New(c, Config{})
	now := clock(7, 12, 0, 0)
	tr.Today(now)
	c.steps = 90
	got := tr.Today(now)
	assert.Equal(t, 90, got.Steps)
	assert.Zero(t, got.ActiveSeconds)
}

func TestTodayRollsOverAtMidnight(t *testing.T) {
	c := &fakeCounter{steps: 9000}
	tr := New(c, Config{})
	tr.Today(clock(7, 23, 59, 0))

	c.steps = 9100
	got := tr.Today(clock(8, 0, 0, 30))
	assert.Equal(t, metric.Raw{}, got)

	c.steps = 9200
	got = tr.Today(clock(8, 0, 1, 30))
	assert.Equal(t, 100, got.Steps)
	assert.Equal(t, 60, got.ActiveSeconds)
	assert.Equal(t, 74, got.WalkedMeters)
	assert.Equal(t, 1, got.RestingKcal)
}

func TestTodayCustomBody(t *testing.T) {
	c := &fakeCounter{steps: 18000}
	tr := New(c, Config{StrideCm: 100, WeightKg: 90, RestingKcalPerDay: 2400})
	got := tr.Today(clock(7, 12, 0, 0))
	assert.Equal(t, 18000, got.WalkedMeters)
	assert.Equal(t, 900, got.ActiveKcal)
	assert.Equal(t, 1200, got.RestingKcal)
}
