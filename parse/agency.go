package parse

import "tidbyt.dev/daytrip/model"

const fileAgency = "agency.txt"

// defaultAgencyID is the sentinel used when agency.txt carries no
// agency_id column (the common case for single-agency feeds).
const defaultAgencyID = "_"

// LoadAgencies builds the agency table, keyed by agency_id (or
// defaultAgencyID when the column is absent). Duplicate ids are a
// fatal *IntegrityError.
func LoadAgencies(dir string) (map[string]*model.Agency, error) {
	req := []string{"agency_name", "agency_url", "agency_timezone"}
	opt := []string{"agency_id", "agency_lang", "agency_phone", "agency_fare_url"}
	const (
		name = iota
		url
		timezone
	)
	const (
		id = iota
		lang
		phone
		fareURL
	)

	agencies := map[string]*model.Agency{}

	err := loadFile(dir, fileAgency, req, opt, func(row []string, r, o []int) error {
		agencyID := getDefault(row, o[id], defaultAgencyID)
		if _, found := agencies[agencyID]; found {
			return newIntegrityError(fileAgency, agencyID)
		}

		a := &model.Agency{
			ID:       agencyID,
			Name:     row[r[name]],
			URL:      row[r[url]],
			Timezone: row[r[timezone]],
		}
		if v, ok := getOptional(row, o[lang]); ok {
			a.Lang = v
		}
		if v, ok := getOptional(row, o[phone]); ok {
			a.Phone = v
		}
		if v, ok := getOptional(row, o[fareURL]); ok {
			a.FareURL = v
		}

		agencies[agencyID] = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	return agencies, nil
}
