package parse

import "tidbyt.dev/daytrip/model"

const fileCalendarDates = "calendar_dates.txt"

// LoadCalendarDates builds the calendar_dates buckets, keyed by
// service_id. Unlike calendar.txt's 1:1 table, this is a 1:N bucket:
// a service may have any number of exception dates.
func LoadCalendarDates(dir string) (map[string][]*model.CalendarDate, error) {
	req := []string{"service_id", "date", "exception_type"}
	const (
		serviceID = iota
		date
		exceptionType
	)

	byService := map[string][]*model.CalendarDate{}
	row := 0

	err := loadFile(dir, fileCalendarDates, req, nil, func(r []string, req, _ []int) error {
		row++

		d, err := ParseDate(fileCalendarDates, "date", r[req[date]], row)
		if err != nil {
			return err
		}
		exc, err := ParseException(fileCalendarDates, "exception_type", r[req[exceptionType]], row)
		if err != nil {
			return err
		}

		id := r[req[serviceID]]
		byService[id] = append(byService[id], &model.CalendarDate{
			ServiceID: id,
			Date:      d,
			Exception: exc,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return byService, nil
}
