package parse

import "tidbyt.dev/daytrip/model"

const fileStops = "stops.txt"

// LoadStops builds the stop table, keyed by stop_id.
func LoadStops(dir string) (map[string]*model.Stop, error) {
	req := []string{"stop_id", "stop_name", "stop_lat", "stop_lon"}
	opt := []string{"stop_code", "stop_desc", "zone_id", "stop_url", "location_type", "parent_station", "stop_timezone"}
	const (
		id = iota
		name
		lat
		lon
	)
	const (
		code = iota
		desc
		zoneID
		url
		locationType
		parentStation
		timezone
	)

	stops := map[string]*model.Stop{}
	row := 0

	err := loadFile(dir, fileStops, req, opt, func(r []string, req, opt []int) error {
		row++

		stopID := r[req[id]]
		if _, found := stops[stopID]; found {
			return newIntegrityError(fileStops, stopID)
		}

		latV, err := ParseFloat(fileStops, "stop_lat", r[req[lat]], row)
		if err != nil {
			return err
		}
		lonV, err := ParseFloat(fileStops, "stop_lon", r[req[lon]], row)
		if err != nil {
			return err
		}

		locType := model.LocationTypeStop
		if v, ok := getOptional(r, opt[locationType]); ok {
			locType, err = ParseLocationType(fileStops, "location_type", v, row)
			if err != nil {
				return err
			}
		}

		s := &model.Stop{
			ID:           stopID,
			Name:         r[req[name]],
			Point:        model.Point{Lat: latV, Lon: lonV},
			LocationType: locType,
		}
		if v, ok := getOptional(r, opt[code]); ok {
			s.Code = v
		}
		if v, ok := getOptional(r, opt[desc]); ok {
			s.Desc = v
		}
		if v, ok := getOptional(r, opt[zoneID]); ok {
			s.ZoneID = v
		}
		if v, ok := getOptional(r, opt[url]); ok {
			s.URL = v
		}
		if v, ok := getOptional(r, opt[parentStation]); ok {
			s.ParentStation = v
		}
		if v, ok := getOptional(r, opt[timezone]); ok {
			s.Timezone = v
		}

		stops[stopID] = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stops, nil
}
