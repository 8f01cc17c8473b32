package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidbyt.dev/daytrip/model"
	"tidbyt.dev/daytrip/scheduler"
	"tidbyt.dev/daytrip/testutil"
)

// eventKind reduces an event to a (kind, at, trip id) tuple for
// assertions that don't need full event payloads.
func eventKind(e scheduler.Event) (string, uint, string) {
	switch v := e.(type) {
	case scheduler.StartEvents:
		return "startevents", 0, ""
	case scheduler.StartTrip:
		return "starttrip", v.At, v.Trip.ID
	case scheduler.StopArrival:
		return "stoparrival", v.At, v.Trip.ID
	case scheduler.EndTrip:
		return "endtrip", v.At, v.Trip.ID
	case scheduler.EndEvents:
		return "endevents", 0, ""
	default:
		return "unknown", 0, ""
	}
}

func TestSimulateTwoOverlappingTrips(t *testing.T) {
	feed := testutil.LoadFeed(t, map[string][]string{
		"agency.txt": {
			"agency_id,agency_name,agency_url,agency_timezone",
			"a1,Acme Transit,http://example.com,UTC",
		},
		"routes.txt": {
			"route_id,agency_id,route_short_name,route_long_name,route_type",
			"r1,a1,1,Downtown,3",
		},
		"trips.txt": {
			"route_id,service_id,trip_id",
			"r1,wk,A",
			"r1,wk,B",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			"A,08:00:00,08:00:00,s1,1",
			"A,08:01:00,08:01:00,s2,2",
			"A,08:02:00,08:02:00,s3,3",
			"B,08:01:00,08:01:00,s2,1",
			"B,08:02:00,08:02:00,s3,2",
		},
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"wk,1,1,1,1,1,0,0,20240101,20241231",
		},
		"calendar_dates.txt": {
			"service_id,date,exception_type",
		},
	})

	events, err := scheduler.Simulate(feed, "a1", time.Monday, model.Date{Year: 2024, Month: 1, Day: 1})
	require.NoError(t, err)

	var kinds []struct {
		kind   string
		at     uint
		tripID string
	}
	for e := range events {
		k, at, id := eventKind(e)
		kinds = append(kinds, struct {
			kind   string
			at     uint
			tripID string
		}{k, at, id})
	}

	require.Len(t, kinds, 11)
	assert.Equal(t, "startevents", kinds[0].kind)
	assert.Equal(t, "starttrip", kinds[1].kind)
	assert.Equal(t, uint(28800), kinds[1].at)
	assert.Equal(t, "A", kinds[1].tripID)
	assert.Equal(t, "stoparrival", kinds[2].kind)
	assert.Equal(t, uint(28800), kinds[2].at)
	assert.Equal(t, "starttrip", kinds[3].kind)
	assert.Equal(t, uint(28860), kinds[3].at)
	assert.Equal(t, "B", kinds[3].tripID)
	assert.Equal(t, "stoparrival", kinds[4].kind)
	assert.Equal(t, "A", kinds[4].tripID)
	assert.Equal(t, "stoparrival", kinds[5].kind)
	assert.Equal(t, "B", kinds[5].tripID)
	assert.Equal(t, "stoparrival", kinds[6].kind)
	assert.Equal(t, uint(28920), kinds[6].at)
	assert.Equal(t, "A", kinds[6].tripID)
	assert.Equal(t, "endtrip", kinds[7].kind)
	assert.Equal(t, "A", kinds[7].tripID)
	assert.Equal(t, "stoparrival", kinds[8].kind)
	assert.Equal(t, "B", kinds[8].tripID)
	assert.Equal(t, "endtrip", kinds[9].kind)
	assert.Equal(t, "B", kinds[9].tripID)
	assert.Equal(t, "endevents", kinds[10].kind)
}

func TestSimulateEmptyRosterStillEmitsEndEvents(t *testing.T) {
	feed := testutil.LoadFeed(t, map[string][]string{})

	events, err := scheduler.Simulate(feed, "_", time.Monday, model.Date{Year: 2024, Month: 1, Day: 1})
	require.NoError(t, err)

	var got []scheduler.Event
	for e := range events {
		got = append(got, e)
	}

	require.Len(t, got, 2)
	_, ok := got[0].(scheduler.StartEvents)
	require.True(t, ok)
	_, ok = got[1].(scheduler.EndEvents)
	require.True(t, ok)
}

func TestSimulateCancelledContextStopsStream(t *testing.T) {
	feed := testutil.LoadFeed(t, map[string][]string{
		"routes.txt": {
			"route_id,route_short_name,route_long_name,route_type",
			"r1,1,Downtown,3",
		},
		"trips.txt": {
			"route_id,service_id,trip_id",
			"r1,wk,t1",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			"t1,08:00:00,08:00:00,s1,1",
		},
		"calendar.txt": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"wk,1,1,1,1,1,0,0,20240101,20241231",
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events, err := scheduler.Simulate(feed, "_", time.Monday, model.Date{Year: 2024, Month: 1, Day: 1}, scheduler.WithContext(ctx))
	require.NoError(t, err)

	var got []scheduler.Event
	for e := range events {
		got = append(got, e)
	}

	// the startevents header precedes the first context check; nothing
	// after it is sent once the context is done.
	require.Len(t, got, 1)
	_, ok := got[0].(scheduler.StartEvents)
	assert.True(t, ok)
}

func TestSimulateRespectsQueueDepthOption(t *testing.T) {
	feed := testutil.LoadFeed(t, map[string][]string{})

	events, err := scheduler.Simulate(feed, "_", time.Monday, model.Date{Year: 2024, Month: 1, Day: 1}, scheduler.WithQueueDepth(4))
	require.NoError(t, err)
	assert.Equal(t, 4, cap(events))

	count := 0
	for range events {
		count++
	}
	assert.Equal(t, 2, count)
}
