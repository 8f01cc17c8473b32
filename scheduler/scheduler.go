package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tidbyt.dev/daytrip"
	"tidbyt.dev/daytrip/model"
)

const defaultQueueDepth = 16

// Option configures a Simulate call.
type Option func(*options)

type options struct {
	queueDepth int
	ctx        context.Context
}

// WithQueueDepth overrides the event channel's buffer size.
func WithQueueDepth(n int) Option {
	return func(o *options) { o.queueDepth = n }
}

// WithContext makes the producer goroutine check ctx between ticks,
// abandoning the simulation early if it is done. This is additive:
// when ctx is never cancelled, the emitted event sequence is
// unchanged from the baseline API.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// tripRun tracks one trip's progress through its stop_times bucket
// during the tick loop.
type tripRun struct {
	trip      *model.Trip
	stopTimes []*model.StopTime
	offset    int
}

// rosterEntry is a trip paired with the arrival time of its first
// stop, the key the roster is sorted by.
type rosterEntry struct {
	trip         *model.Trip
	stopTimes    []*model.StopTime
	firstArrival uint
}

// Simulate replays one calendar day of agencyID's schedule in feed,
// returning a channel of events in send order. The returned channel
// is closed once EndEvents has been sent or the context (if any) is
// cancelled.
//
// ArrivalTime values are not wrapped across midnight: a trip whose
// stop_times carry hours >= 24 (legal for GTFS next-day service)
// sorts late in the roster and runs after the day's other trips, at
// its unwrapped times.
func Simulate(feed *daytrip.Feed, agencyID string, weekday time.Weekday, date model.Date, opts ...Option) (<-chan Event, error) {
	o := options{queueDepth: defaultQueueDepth, ctx: context.Background()}
	for _, apply := range opts {
		apply(&o)
	}

	roster, services, err := buildRoster(feed, agencyID, weekday, date)
	if err != nil {
		return nil, err
	}

	out := make(chan Event, o.queueDepth)
	go run(o.ctx, out, roster, services)
	return out, nil
}

// buildRoster resolves the active services for the day, filters their
// trips to agencyID, and sorts them by first arrival (ties broken by
// trip id for a deterministic total order).
func buildRoster(feed *daytrip.Feed, agencyID string, weekday time.Weekday, date model.Date) ([]rosterEntry, int, error) {
	serviceIDs := feed.ActiveServiceIDs(weekday, date)
	tripIDs := feed.TripIDsForServiceIDs(serviceIDs)

	var roster []rosterEntry
	for _, tripID := range tripIDs {
		trip, ok := feed.Trips[tripID]
		if !ok {
			continue
		}
		route, ok := feed.Routes[trip.RouteID]
		if !ok || route.AgencyID != agencyID {
			continue
		}

		stopTimes := feed.StopTimes[tripID]
		if len(stopTimes) == 0 {
			return nil, 0, fmt.Errorf("trip %s has no stop_times", tripID)
		}

		roster = append(roster, rosterEntry{
			trip:         trip,
			stopTimes:    stopTimes,
			firstArrival: stopTimes[0].ArrivalTime,
		})
	}

	sort.Slice(roster, func(i, j int) bool {
		if roster[i].firstArrival != roster[j].firstArrival {
			return roster[i].firstArrival < roster[j].firstArrival
		}
		return roster[i].trip.ID < roster[j].trip.ID
	})

	return roster, len(serviceIDs), nil
}

// run drives the tick loop and sends events to out, closing it on
// completion or context cancellation.
func run(ctx context.Context, out chan<- Event, roster []rosterEntry, services int) {
	defer close(out)

	out <- StartEvents{Services: services, Trips: len(roster)}

	if len(roster) == 0 {
		out <- EndEvents{}
		return
	}

	now := roster[0].firstArrival
	tripIndex := 0
	var running []*tripRun

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		const noNextTime = ^uint(0)
		nextTime := noNextTime

		for tripIndex < len(roster) {
			entry := roster[tripIndex]
			if entry.firstArrival < now {
				panic("scheduler: roster first arrival went backwards")
			}
			if entry.firstArrival != now {
				if entry.firstArrival < nextTime {
					nextTime = entry.firstArrival
				}
				break
			}

			running = append(running, &tripRun{trip: entry.trip, stopTimes: entry.stopTimes})
			out <- StartTrip{At: now, Trip: *entry.trip}
			tripIndex++
		}

		stillRunning := running[:0]
		for _, r := range running {
			for r.offset < len(r.stopTimes) {
				st := r.stopTimes[r.offset]
				if st.ArrivalTime < now {
					panic("scheduler: stop_time arrival went backwards")
				}
				if st.ArrivalTime != now {
					if st.ArrivalTime < nextTime {
						nextTime = st.ArrivalTime
					}
					break
				}

				out <- StopArrival{At: now, Trip: *r.trip, StopTime: *st}
				r.offset++
			}

			if r.offset == len(r.stopTimes) {
				out <- EndTrip{At: now, Trip: *r.trip}
			} else {
				stillRunning = append(stillRunning, r)
			}
		}
		running = stillRunning

		if len(running) == 0 && tripIndex == len(roster) {
			out <- EndEvents{}
			return
		}

		now = nextTime
	}
}
