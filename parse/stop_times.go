package parse

import (
	"sort"

	"tidbyt.dev/daytrip/model"
)

const fileStopTimes = "stop_times.txt"

// LoadStopTimes builds the stop_times buckets, keyed by trip_id. Each
// bucket is stably sorted ascending by sequence once the whole file
// has been read -- the only post-ingest mutation the feed performs.
func LoadStopTimes(dir string) (map[string][]*model.StopTime, error) {
	req := []string{"trip_id", "arrival_time", "departure_time", "stop_id", "stop_sequence"}
	opt := []string{"stop_headsign", "pickup_type", "drop_off_type", "shape_dist_travelled"}
	const (
		tripID = iota
		arrivalTime
		departureTime
		stopID
		sequence
	)
	const (
		headsign = iota
		pickupType
		dropOffType
		travelled
	)

	byTrip := map[string][]*model.StopTime{}
	row := 0

	err := loadFile(dir, fileStopTimes, req, opt, func(r []string, req, opt []int) error {
		row++

		seq, err := ParseUint(fileStopTimes, "stop_sequence", r[req[sequence]], row)
		if err != nil {
			return err
		}
		arr, err := ParseTime(fileStopTimes, "arrival_time", r[req[arrivalTime]], row)
		if err != nil {
			return err
		}
		dep, err := ParseTime(fileStopTimes, "departure_time", r[req[departureTime]], row)
		if err != nil {
			return err
		}

		st := &model.StopTime{
			TripID:        r[req[tripID]],
			ArrivalTime:   arr,
			DepartureTime: dep,
			StopID:        r[req[stopID]],
			Sequence:      seq,
		}
		if v, ok := getOptional(r, opt[headsign]); ok {
			st.Headsign = v
		}
		if v, ok := getOptional(r, opt[pickupType]); ok {
			m, err := ParseMarshal(fileStopTimes, "pickup_type", v, row)
			if err != nil {
				return err
			}
			st.PickupType = &m
		}
		if v, ok := getOptional(r, opt[dropOffType]); ok {
			m, err := ParseMarshal(fileStopTimes, "drop_off_type", v, row)
			if err != nil {
				return err
			}
			st.DropOffType = &m
		}
		if v, ok := getOptional(r, opt[travelled]); ok {
			f, err := ParseFloat(fileStopTimes, "shape_dist_travelled", v, row)
			if err != nil {
				return err
			}
			st.ShapeDistTravelled = &f
		}

		byTrip[st.TripID] = append(byTrip[st.TripID], st)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, bucket := range byTrip {
		b := bucket
		sort.SliceStable(b, func(i, j int) bool {
			return b[i].Sequence < b[j].Sequence
		})
	}

	return byTrip, nil
}
