package parse

import "tidbyt.dev/daytrip/model"

const fileRoutes = "routes.txt"

// LoadRoutes builds the route table, keyed by route_id. agency_id
// defaults to defaultAgencyID when the column is absent from the row.
func LoadRoutes(dir string) (map[string]*model.Route, error) {
	req := []string{"route_id", "route_short_name", "route_long_name", "route_type"}
	opt := []string{"agency_id", "route_desc", "route_url", "route_color", "route_text_color"}
	const (
		id = iota
		shortName
		longName
		routeType
	)
	const (
		agencyID = iota
		desc
		url
		color
		textColor
	)

	routes := map[string]*model.Route{}
	row := 0

	err := loadFile(dir, fileRoutes, req, opt, func(r []string, req, opt []int) error {
		row++

		routeID := r[req[id]]
		if _, found := routes[routeID]; found {
			return newIntegrityError(fileRoutes, routeID)
		}

		t, err := ParseRouteType(fileRoutes, "route_type", r[req[routeType]], row)
		if err != nil {
			return err
		}

		rt := &model.Route{
			ID:        routeID,
			AgencyID:  getDefault(r, opt[agencyID], defaultAgencyID),
			ShortName: r[req[shortName]],
			LongName:  r[req[longName]],
			Type:      t,
		}
		if v, ok := getOptional(r, opt[desc]); ok {
			rt.Desc = v
		}
		if v, ok := getOptional(r, opt[url]); ok {
			rt.URL = v
		}
		if v, ok := getOptional(r, opt[color]); ok {
			rt.Color = v
		}
		if v, ok := getOptional(r, opt[textColor]); ok {
			rt.TextColor = v
		}

		routes[routeID] = rt
		return nil
	})
	if err != nil {
		return nil, err
	}

	return routes, nil
}
