// Package health derives today's cumulative health metrics from a hardware step
// counter.
package health

import (
	"time"

	"github.com/ardnew/healthmetrics/metric"
)

// Default constants for Tracker configuration.
const (
	DefaultStrideCm          = 74   // cm
	DefaultWeightKg          = 70   // kg
	DefaultRestingKcalPerDay = 1600 // kcal
	DefaultActiveCadence     = 40   // steps/min
)

// kcal burned per step is roughly WeightKg/stepsPerKcalKg.
const stepsPerKcalKg = 1800

const secondsPerDay = 24 * 60 * 60

// StepCounter reports the number of steps counted since the sensor was last
// reset.
type StepCounter interface {
	Steps() uint32
}

// Config describes the wearer and their display preferences.
type Config struct {
	System            metric.System
	StrideCm          int
	WeightKg          int
	RestingKcalPerDay int
	ActiveCadence     int // minimum steps/min counted as active time
}

// Tracker accumulates the wearer's activity for the current local day.
type Tracker struct {
	counter StepCounter
	config  Config

	day     time.Time // local midnight of the day being tracked
	last    time.Time // time of the previous sample
	reading uint32    // counter value at the previous sample
	steps   int
	active  int // seconds
}

// New returns a new Tracker reading from counter.
func New(counter StepCounter, config Config) *Tracker {

	if config.StrideCm == 0 {
		config.StrideCm = DefaultStrideCm
	}
	if config.WeightKg == 0 {
		config.WeightKg = DefaultWeightKg
	}
	if config.RestingKcalPerDay == 0 {
		config.RestingKcalPerDay = DefaultRestingKcalPerDay
	}
	if config.ActiveCadence == 0 {
		config.ActiveCadence = DefaultActiveCadence
	}

	return &Tracker{counter: counter, config: config}
}

// System returns the wearer's preferred measurement system.
func (t *Tracker) System() metric.System {
	return t.config.System
}

// Today samples the step counter and returns the totals for the local day
// containing now.
func (t *Tracker) Today(now time.Time) metric.Raw {
	reading := t.counter.Steps()

	switch day := midnight(now); {
	case t.last.IsZero():
		// the counter starts at power-on, so its first reading belongs to today
		t.day, t.last, t.reading = day, now, reading
		t.steps, t.active = int(reading), 0
	case !day.Equal(t.day):
		// a new day starts from the current counter value
		t.day, t.last, t.reading = day, now, reading
		t.steps, t.active = 0, 0
	default:
		t.sample(now, reading)
	}

	return metric.Raw{
		Steps:         t.steps,
		ActiveSeconds: t.active,
		WalkedMeters:  t.steps * t.config.StrideCm / 100,
		ActiveKcal:    t.steps * t.config.WeightKg / stepsPerKcalKg,
		RestingKcal: int(int64(t.config.RestingKcalPerDay) *
			int64(now.Sub(t.day)/time.Second) / secondsPerDay),
	}
}

func (t *Tracker) sample(now time.Time, reading uint32) {
	delta := reading - t.reading
	if reading < t.reading {
		// counter was reset since the previous sample
		delta = reading
	}
	t.steps += int(delta)
	t.reading = reading
	secs := int64(now.Sub(t.last) / time.Second)
	if secs <= 0 {
		return
	}
	// delta/secs >= cadence/60, without division
	if int64(delta)*60 >= int64(t.config.ActiveCadence)*secs {
		t.active += int(secs)
	}
	t.last = t.last.Add(time.Duration(secs) * time.Second)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
