// Package model implements the snapshot of watchface state with methods for
// synchronized read+write access.
package model

import (
	"sync"
	"time"

	"github.com/ardnew/healthmetrics/metric"
)

// Model defines the data rendered by one redraw of the watchface.
//
// Producers (the tick loop, the Bluetooth connection handler) and the consumer
// (the display) never share a Model directly. They exchange copies through a
// Store, which provides automatic synchronization.
type Model struct {
	Time      time.Time
	Clock24h  bool
	Health    metric.Raw
	System    metric.System
	Battery   Battery
	Connected bool
	Status    Status
}

// Battery is the charge state reported by the power supply.
type Battery struct {
	Percent  uint8
	Charging bool
}

// Status represents the current position of the watchface lifecycle.
type Status uint8

// Constants defining each possible program Status.
const (
	StatusIdle Status = iota
	StatusStarting
	StatusRunning
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusStarting:
		return "starting"
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	}
	return "idle"
}

// Store holds a Model and a flag recording whether it has been modified since
// it was last read.
type Store struct {
	lock    sync.Mutex
	data    Model
	changed bool
}

// NewStore returns a Store holding the zero Model.
func NewStore() *Store {
	return &Store{}
}

// Get safely returns the store's changed flag and a copy of the Model data (as
// it was defined when Get was called).
// The changed flag is automatically set false after reading.
func (s *Store) Get() (changed bool, data Model) {
	s.lock.Lock()
	changed, data = s.changed, s.data
	s.changed = false
	s.lock.Unlock()
	return
}

// Peek returns a copy of the Model data without affecting the changed flag.
func (s *Store) Peek() Model {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.data
}

// Set provides synchronized read+write access to the Model data via argument to
// the given closure.
// The changed flag is automatically set true after the closure has been called.
func (s *Store) Set(set func(*Model)) {
	s.lock.Lock()
	set(&s.data)
	s.changed = true
	s.lock.Unlock()
}

// Mod provides synchronized read+write access to the Model data via argument to
// the given closure.
// The changed flag is unaffected by this method.
func (s *Store) Mod(mod func(*Model)) {
	s.lock.Lock()
	mod(&s.data)
	s.lock.Unlock()
}
