// Package daytrip loads a GTFS static feed into an in-memory,
// read-only index and replays a calendar day of its schedule as a
// stream of discrete events (see the scheduler package).
package daytrip

import (
	"fmt"

	"tidbyt.dev/daytrip/model"
	"tidbyt.dev/daytrip/parse"
)

// Feed is the fully loaded, immutable relational index of a GTFS
// bundle. It is safe for concurrent reads once Load returns; nothing
// in this package mutates a Feed afterwards.
type Feed struct {
	Agencies      map[string]*model.Agency
	Stops         map[string]*model.Stop
	Routes        map[string]*model.Route
	Trips         map[string]*model.Trip
	StopTimes     map[string][]*model.StopTime
	Calendars     map[string]*model.Calendar
	CalendarDates map[string][]*model.CalendarDate
}

// Load reads the seven GTFS files from dir, in the fixed order
// agency -> stops -> routes -> trips -> stop_times -> calendar ->
// calendar_dates, and returns the fully populated feed.
//
// Any schema, value, or integrity error aborts the load and returns a
// non-nil error; no partial feed is ever returned.
func Load(dir string) (*Feed, error) {
	agencies, err := parse.LoadAgencies(dir)
	if err != nil {
		return nil, fmt.Errorf("loading agency.txt: %w", err)
	}

	stops, err := parse.LoadStops(dir)
	if err != nil {
		return nil, fmt.Errorf("loading stops.txt: %w", err)
	}

	routes, err := parse.LoadRoutes(dir)
	if err != nil {
		return nil, fmt.Errorf("loading routes.txt: %w", err)
	}

	trips, err := parse.LoadTrips(dir)
	if err != nil {
		return nil, fmt.Errorf("loading trips.txt: %w", err)
	}

	stopTimes, err := parse.LoadStopTimes(dir)
	if err != nil {
		return nil, fmt.Errorf("loading stop_times.txt: %w", err)
	}

	calendars, err := parse.LoadCalendar(dir)
	if err != nil {
		return nil, fmt.Errorf("loading calendar.txt: %w", err)
	}

	calendarDates, err := parse.LoadCalendarDates(dir)
	if err != nil {
		return nil, fmt.Errorf("loading calendar_dates.txt: %w", err)
	}

	return &Feed{
		Agencies:      agencies,
		Stops:         stops,
		Routes:        routes,
		Trips:         trips,
		StopTimes:     stopTimes,
		Calendars:     calendars,
		CalendarDates: calendarDates,
	}, nil
}
