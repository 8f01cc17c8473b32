package parse

import (
	"time"

	"tidbyt.dev/daytrip/model"
)

const fileCalendar = "calendar.txt"

var weekdayColumns = []struct {
	field string
	day   time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// LoadCalendar builds the calendar table, keyed by service_id. Each of
// the seven boolean weekday columns is folded into a single Weekday
// bitmask.
func LoadCalendar(dir string) (map[string]*model.Calendar, error) {
	req := []string{"service_id", "start_date", "end_date"}
	for _, w := range weekdayColumns {
		req = append(req, w.field)
	}
	const (
		serviceID = iota
		startDate
		endDate
		firstWeekday
	)

	calendars := map[string]*model.Calendar{}
	row := 0

	err := loadFile(dir, fileCalendar, req, nil, func(r []string, req, _ []int) error {
		row++

		id := r[req[serviceID]]
		if _, found := calendars[id]; found {
			return newIntegrityError(fileCalendar, id)
		}

		var weekdays model.Weekday
		for i, w := range weekdayColumns {
			active, err := ParseBool(fileCalendar, w.field, r[req[firstWeekday+i]], row)
			if err != nil {
				return err
			}
			if active {
				weekdays = weekdays.With(w.day)
			}
		}

		start, err := ParseDate(fileCalendar, "start_date", r[req[startDate]], row)
		if err != nil {
			return err
		}
		end, err := ParseDate(fileCalendar, "end_date", r[req[endDate]], row)
		if err != nil {
			return err
		}

		calendars[id] = &model.Calendar{
			ServiceID: id,
			Weekdays:  weekdays,
			StartDate: start,
			EndDate:   end,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return calendars, nil
}
