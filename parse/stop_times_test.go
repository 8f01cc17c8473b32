package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStopTimesSortsBySequence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stop_times.txt",
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
		"t1,08:10:00,08:10:00,s2,2",
		"t1,08:00:00,08:00:00,s1,1",
		"t1,08:20:00,08:20:00,s3,3",
	)

	byTrip, err := LoadStopTimes(dir)
	require.NoError(t, err)

	got := byTrip["t1"]
	require.Len(t, got, 3)
	assert.Equal(t, uint(1), got[0].Sequence)
	assert.Equal(t, uint(2), got[1].Sequence)
	assert.Equal(t, uint(3), got[2].Sequence)
	assert.Equal(t, "s1", got[0].StopID)
}

func TestLoadStopTimesOptionalFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stop_times.txt",
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence,pickup_type,shape_dist_travelled",
		"t1,08:00:00,08:00:00,s1,1,2,12.5",
	)

	byTrip, err := LoadStopTimes(dir)
	require.NoError(t, err)

	st := byTrip["t1"][0]
	require.NotNil(t, st.PickupType)
	require.NotNil(t, st.ShapeDistTravelled)
	assert.InDelta(t, 12.5, *st.ShapeDistTravelled, 1e-9)
}
