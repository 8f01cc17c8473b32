// Package scheduler replays a loaded feed's schedule for one calendar
// day as an ordered stream of events, delivered to the caller across
// a channel from a dedicated producer goroutine.
package scheduler

import "tidbyt.dev/daytrip/model"

// Event is the closed set of values sent on the channel returned by
// Simulate. Exactly one of the concrete types below is ever sent;
// callers type-switch on it.
type Event interface {
	isEvent()
}

// StartEvents is always the first event sent, reporting the size of
// the day's active service set and the trip roster derived from it.
type StartEvents struct {
	Services int
	Trips    int
}

// StartTrip marks a trip entering service at time At (seconds since
// midnight). Trip is a value copy, safe to retain after the event is
// received.
type StartTrip struct {
	At   uint
	Trip model.Trip
}

// StopArrival marks a trip arriving at a stop at time At.
type StopArrival struct {
	At       uint
	Trip     model.Trip
	StopTime model.StopTime
}

// EndTrip marks a trip completing its stop sequence at time At.
type EndTrip struct {
	At   uint
	Trip model.Trip
}

// EndEvents is the last event sent when the simulation runs to
// completion. A stream abandoned through a cancelled context (see
// WithContext) is closed without it.
type EndEvents struct{}

func (StartEvents) isEvent() {}
func (StartTrip) isEvent()   {}
func (StopArrival) isEvent() {}
func (EndTrip) isEvent()     {}
func (EndEvents) isEvent()   {}
