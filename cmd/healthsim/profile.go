package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ardnew/healthmetrics/display"
	"github.com/ardnew/healthmetrics/health"
	"github.com/ardnew/healthmetrics/metric"
	"github.com/ardnew/healthmetrics/model"
)

var ErrBoutRange = errors.New("activity bout ends before it starts")

// Profile describes the simulated wearer, their watch, and their day.
type Profile struct {
	Case      string  `yaml:"case"`
	Clock24h  bool    `yaml:"clock24h"`
	Units     string  `yaml:"units"`
	Battery   Battery `yaml:"battery"`
	Connected bool    `yaml:"connected"`
	Body      Body    `yaml:"body"`
	Activity  []Bout  `yaml:"activity"`
}

type Battery struct {
	Percent  uint8 `yaml:"percent"`
	Charging bool  `yaml:"charging"`
}

type Body struct {
	StrideCm      int `yaml:"stride_cm"`
	WeightKg      int `yaml:"weight_kg"`
	RestingKcal   int `yaml:"resting_kcal"`
	ActiveCadence int `yaml:"active_cadence"`
}

// Bout is a period of walking at a steady cadence, in steps per minute.
type Bout struct {
	From    string `yaml:"from"`
	To      string `yaml:"to"`
	Cadence int    `yaml:"cadence"`

	from, to time.Duration // offsets from midnight
}

// defaultProfile is used when no profile file is given.
func defaultProfile() Profile {
	return Profile{
		Case:      "black",
		Units:     "metric",
		Battery:   Battery{Percent: 80},
		Connected: true,
		Activity: []Bout{
			{From: "07:30", To: "08:00", Cadence: 110},
			{From: "12:15", To: "12:45", Cadence: 95},
			{From: "17:30", To: "18:30", Cadence: 120},
		},
	}
}

func loadProfile(path string) (Profile, error) {
	p := defaultProfile()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return p, fmt.Errorf("failed to read profile %s: %w", path, err)
		}
		p = Profile{}
		if err := yaml.Unmarshal(data, &p); err != nil {
			return p, fmt.Errorf("failed to parse profile %s: %w", path, err)
		}
	}
	for i := range p.Activity {
		if err := p.Activity[i].parse(); err != nil {
			return p, fmt.Errorf("activity bout %d: %w", i, err)
		}
	}
	return p, nil
}

func (b *Bout) parse() error {
	from, err := time.Parse("15:04", b.From)
	if err != nil {
		return err
	}
	to, err := time.Parse("15:04", b.To)
	if err != nil {
		return err
	}
	if b.from, b.to = offset(from), offset(to); b.to < b.from {
		return ErrBoutRange
	}
	return nil
}

func offset(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

// cadence returns the steps walked in the minute starting since midnight.
func (p Profile) cadence(since time.Duration) int {
	for _, b := range p.Activity {
		if since >= b.from && since < b.to {
			return b.Cadence
		}
	}
	return 0
}

func (p Profile) system() metric.System {
	system, err := metric.ParseSystem(p.Units)
	if err != nil {
		log.Warnw("unrecognized units", "units", p.Units, "error", err)
	}
	return system
}

func (p Profile) theme() display.Theme {
	return display.ThemeFor(p.Case)
}

func (p Profile) battery() model.Battery {
	return model.Battery{Percent: p.Battery.Percent, Charging: p.Battery.Charging}
}

// pedometer is the simulated hardware step counter.
type pedometer struct{ steps uint32 }

func (s *pedometer) Steps() uint32 { return s.steps }

// simulate replays the profile's day from midnight up to, but excluding, the
// minute containing at. The returned tracker is ready to be sampled at at.
func (p Profile) simulate(at time.Time) *health.Tracker {
	counter := &pedometer{}
	tracker := health.New(counter, health.Config{
		System:            p.system(),
		StrideCm:          p.Body.StrideCm,
		WeightKg:          p.Body.WeightKg,
		RestingKcalPerDay: p.Body.RestingKcal,
		ActiveCadence:     p.Body.ActiveCadence,
	})

	y, m, d := at.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, at.Location())
	for t := midnight; t.Before(at); t = t.Add(time.Minute) {
		tracker.Today(t)
		counter.steps += uint32(p.cadence(t.Sub(midnight)))
	}
	return tracker
}
