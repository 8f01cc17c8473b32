package daytrip

import (
	"fmt"
	"math"
	"sort"
	"time"

	"tidbyt.dev/daytrip/model"
)

// LookupStops returns the stops named by ids, in input order. Callers
// are expected to pass ids obtained from the feed itself; an unknown
// id panics.
func (f *Feed) LookupStops(ids []string) []*model.Stop {
	r := make([]*model.Stop, 0, len(ids))
	for _, id := range ids {
		s, ok := f.Stops[id]
		if !ok {
			panic(fmt.Sprintf("daytrip: unknown stop id %q", id))
		}
		r = append(r, s)
	}
	return r
}

// LookupTrips returns the trips named by ids, in input order. An
// unknown id panics.
func (f *Feed) LookupTrips(ids []string) []*model.Trip {
	r := make([]*model.Trip, 0, len(ids))
	for _, id := range ids {
		t, ok := f.Trips[id]
		if !ok {
			panic(fmt.Sprintf("daytrip: unknown trip id %q", id))
		}
		r = append(r, t)
	}
	return r
}

// LookupRoutes returns the routes named by ids, in input order. An
// unknown id panics.
func (f *Feed) LookupRoutes(ids []string) []*model.Route {
	r := make([]*model.Route, 0, len(ids))
	for _, id := range ids {
		rt, ok := f.Routes[id]
		if !ok {
			panic(fmt.Sprintf("daytrip: unknown route id %q", id))
		}
		r = append(r, rt)
	}
	return r
}

// LookupStopTimes returns the stop_times buckets for the given trip
// ids, in input order. An unknown trip id panics.
func (f *Feed) LookupStopTimes(tripIDs []string) [][]*model.StopTime {
	r := make([][]*model.StopTime, 0, len(tripIDs))
	for _, id := range tripIDs {
		st, ok := f.StopTimes[id]
		if !ok {
			panic(fmt.Sprintf("daytrip: unknown trip id %q", id))
		}
		r = append(r, st)
	}
	return r
}

// RoutesForAgency returns the routes whose agency_id matches id.
func (f *Feed) RoutesForAgency(id string) []*model.Route {
	routes := make([]*model.Route, 0, len(f.Routes))
	for _, route := range f.Routes {
		if route.AgencyID == id {
			routes = append(routes, route)
		}
	}
	return routes
}

// StopsForAgency returns the distinct stop ids visited by any trip
// running on a route belonging to agency id.
func (f *Feed) StopsForAgency(id string) []string {
	seen := map[string]struct{}{}
	for tripID, stopTimes := range f.StopTimes {
		trip, ok := f.Trips[tripID]
		if !ok {
			continue
		}
		route, ok := f.Routes[trip.RouteID]
		if !ok || route.AgencyID != id {
			continue
		}
		for _, st := range stopTimes {
			seen[st.StopID] = struct{}{}
		}
	}

	r := make([]string, 0, len(seen))
	for stopID := range seen {
		r = append(r, stopID)
	}
	return r
}

// StopsBBox returns the smallest rectangle enclosing all the given
// stops.
func (f *Feed) StopsBBox(stops []*model.Stop) model.Rectangle {
	latMin, lonMin := math.Inf(1), math.Inf(1)
	latMax, lonMax := math.Inf(-1), math.Inf(-1)

	for _, s := range stops {
		latMin = math.Min(latMin, s.Point.Lat)
		lonMin = math.Min(lonMin, s.Point.Lon)
		latMax = math.Max(latMax, s.Point.Lat)
		lonMax = math.Max(lonMax, s.Point.Lon)
	}

	return model.Rectangle{
		SW: model.Point{Lat: latMin, Lon: lonMin},
		NE: model.Point{Lat: latMax, Lon: lonMax},
	}
}

// BBox returns the bounding rectangle over every stop in the feed.
func (f *Feed) BBox() model.Rectangle {
	stops := make([]*model.Stop, 0, len(f.Stops))
	for _, s := range f.Stops {
		stops = append(stops, s)
	}
	return f.StopsBBox(stops)
}

// ActiveServiceIDs returns the service ids running on the given
// weekday and date: a service is active if its calendar entry's
// weekday bitmask includes day, adjusted by any calendar_dates
// exception for the exact date. calendar.txt's start_date/end_date
// range is deliberately not enforced here; calendar_dates is treated
// as the sole authority for date-scoped overrides.
func (f *Feed) ActiveServiceIDs(day time.Weekday, date model.Date) []string {
	active := map[string]struct{}{}

	for _, cal := range f.Calendars {
		if cal.Weekdays.Has(day) {
			active[cal.ServiceID] = struct{}{}
		}
	}

	for _, exceptions := range f.CalendarDates {
		for _, e := range exceptions {
			if e.Date != date {
				continue
			}
			switch e.Exception {
			case model.ExceptionAdded:
				active[e.ServiceID] = struct{}{}
			case model.ExceptionRemoved:
				delete(active, e.ServiceID)
			}
		}
	}

	r := make([]string, 0, len(active))
	for id := range active {
		r = append(r, id)
	}
	return r
}

// TripIDsForServiceIDs returns the ids of trips whose service_id is
// one of serviceIDs.
func (f *Feed) TripIDsForServiceIDs(serviceIDs []string) []string {
	want := make(map[string]struct{}, len(serviceIDs))
	for _, id := range serviceIDs {
		want[id] = struct{}{}
	}

	var trips []string
	for _, trip := range f.Trips {
		if _, ok := want[trip.ServiceID]; ok {
			trips = append(trips, trip.ID)
		}
	}
	return trips
}

// NearbyStops returns stops ordered by great-circle distance from
// (lat, lng), optionally restricted to stops served by at least one
// route of a type in routeTypes (all types, when empty). limit caps
// the result length; limit <= 0 means unlimited.
func (f *Feed) NearbyStops(lat, lng float64, limit int, routeTypes []model.RouteType) []*model.Stop {
	var typeSet map[model.RouteType]bool
	if len(routeTypes) > 0 {
		typeSet = make(map[model.RouteType]bool, len(routeTypes))
		for _, rt := range routeTypes {
			typeSet[rt] = true
		}
	}

	stops := make([]*model.Stop, 0, len(f.Stops))
	for _, s := range f.Stops {
		if typeSet == nil || f.stopServesAnyType(s.ID, typeSet) {
			stops = append(stops, s)
		}
	}

	center := model.Point{Lat: lat, Lon: lng}
	sort.Slice(stops, func(i, j int) bool {
		return HaversineDistance(center, stops[i].Point) < HaversineDistance(center, stops[j].Point)
	})

	if limit > 0 && len(stops) > limit {
		stops = stops[:limit]
	}
	return stops
}

// stopServesAnyType reports whether any trip visiting stopID runs on
// a route whose type is in types.
func (f *Feed) stopServesAnyType(stopID string, types map[model.RouteType]bool) bool {
	for tripID, stopTimes := range f.StopTimes {
		visits := false
		for _, st := range stopTimes {
			if st.StopID == stopID {
				visits = true
				break
			}
		}
		if !visits {
			continue
		}

		trip, ok := f.Trips[tripID]
		if !ok {
			continue
		}
		route, ok := f.Routes[trip.RouteID]
		if ok && types[route.Type] {
			return true
		}
	}
	return false
}

// RouteDirections aggregates, for every (route, direction) pair
// serving a stop, the distinct headsigns observed on its trips.
func (f *Feed) RouteDirections(stopID string) []*model.RouteDirection {
	type key struct {
		routeID   string
		direction model.Direction
	}
	headsigns := map[key]map[string]struct{}{}

	for tripID, stopTimes := range f.StopTimes {
		visits := false
		for _, st := range stopTimes {
			if st.StopID == stopID {
				visits = true
				break
			}
		}
		if !visits {
			continue
		}

		trip, ok := f.Trips[tripID]
		if !ok || trip.Direction == nil {
			continue
		}

		k := key{routeID: trip.RouteID, direction: *trip.Direction}
		if headsigns[k] == nil {
			headsigns[k] = map[string]struct{}{}
		}
		if trip.Headsign != "" {
			headsigns[k][trip.Headsign] = struct{}{}
		}
	}

	r := make([]*model.RouteDirection, 0, len(headsigns))
	for k, set := range headsigns {
		hs := make([]string, 0, len(set))
		for h := range set {
			hs = append(hs, h)
		}
		sort.Strings(hs)
		r = append(r, &model.RouteDirection{
			StopID:    stopID,
			RouteID:   k.routeID,
			Direction: k.direction,
			Headsigns: hs,
		})
	}
	return r
}

// pointFormat renders a point the way the feed's describe output
// always has: longitude is labeled E only when strictly positive, so
// a point sitting exactly on the prime meridian prints W.
func pointFormat(p model.Point) string {
	var lat string
	if p.Lat >= 0 {
		lat = fmt.Sprintf("%3.2fN", p.Lat)
	} else {
		lat = fmt.Sprintf("%3.2fS", -p.Lat)
	}

	var lon string
	if p.Lon > 0 {
		lon = fmt.Sprintf("%3.2fE", p.Lon)
	} else {
		// math.Abs, not negation: a longitude of exactly 0 would
		// otherwise format as negative zero.
		lon = fmt.Sprintf("%3.2fW", math.Abs(p.Lon))
	}

	return lat + " " + lon
}

// Describe renders a one-paragraph-per-agency human-readable summary
// of the feed's contents, in id order for determinism.
func (f *Feed) Describe() string {
	res := fmt.Sprintf("%d agencies, %d stops, %d routes, %d trips, %d stop_times, %d calendars, %d calendar_dates\n",
		len(f.Agencies), len(f.Stops), len(f.Routes), len(f.Trips), len(f.StopTimes),
		len(f.Calendars), len(f.CalendarDates))

	ids := make([]string, 0, len(f.Agencies))
	for id := range f.Agencies {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		agency := f.Agencies[id]
		stopIDs := f.StopsForAgency(id)
		stops := f.LookupStops(stopIDs)
		bounds := f.StopsBBox(stops)

		res += fmt.Sprintf("agency id %s: %s (%d routes, %d stops) SW (%s) NE (%s)\n",
			id, agency.Name,
			len(f.RoutesForAgency(id)),
			len(stops),
			pointFormat(bounds.SW),
			pointFormat(bounds.NE))
	}

	return res
}
