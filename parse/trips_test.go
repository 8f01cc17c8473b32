package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidbyt.dev/daytrip/model"
)

func TestLoadTripsDirectionColumnPresent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "trips.txt",
		"route_id,service_id,trip_id,direction_id",
		"r1,wk,t1,0",
	)

	trips, err := LoadTrips(dir)
	require.NoError(t, err)

	require.NotNil(t, trips["t1"].Direction)
	assert.Equal(t, model.DirectionA, *trips["t1"].Direction)
}

func TestLoadTripsDirectionColumnAbsent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "trips.txt",
		"route_id,service_id,trip_id",
		"r1,wk,t1",
	)

	trips, err := LoadTrips(dir)
	require.NoError(t, err)
	assert.Nil(t, trips["t1"].Direction)
}

func TestLoadTripsDuplicateID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "trips.txt",
		"route_id,service_id,trip_id",
		"r1,wk,t1",
		"r1,wk,t1",
	)

	_, err := LoadTrips(dir)
	var integrityErr *IntegrityError
	require.ErrorAs(t, err, &integrityErr)
}
