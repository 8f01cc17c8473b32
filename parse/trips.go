package parse

import "tidbyt.dev/daytrip/model"

const fileTrips = "trips.txt"

// LoadTrips builds the trip table, keyed by trip_id.
func LoadTrips(dir string) (map[string]*model.Trip, error) {
	req := []string{"route_id", "service_id", "trip_id"}
	opt := []string{"trip_headsign", "trip_short_name", "direction_id", "block_id", "shape_id"}
	const (
		routeID = iota
		serviceID
		id
	)
	const (
		headsign = iota
		shortName
		directionID
		blockID
		shapeID
	)

	trips := map[string]*model.Trip{}
	row := 0

	err := loadFile(dir, fileTrips, req, opt, func(r []string, req, opt []int) error {
		row++

		tripID := r[req[id]]
		if _, found := trips[tripID]; found {
			return newIntegrityError(fileTrips, tripID)
		}

		t := &model.Trip{
			ID:        tripID,
			RouteID:   r[req[routeID]],
			ServiceID: r[req[serviceID]],
		}
		if v, ok := getOptional(r, opt[headsign]); ok {
			t.Headsign = v
		}
		if v, ok := getOptional(r, opt[shortName]); ok {
			t.ShortName = v
		}
		if v, ok := getOptional(r, opt[blockID]); ok {
			t.BlockID = v
		}
		if v, ok := getOptional(r, opt[shapeID]); ok {
			t.ShapeID = v
		}
		if v, ok := getOptional(r, opt[directionID]); ok {
			d, err := ParseDirection(fileTrips, "direction_id", v, row)
			if err != nil {
				return err
			}
			t.Direction = &d
		}

		trips[tripID] = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return trips, nil
}
