package parse

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"tidbyt.dev/daytrip/model"
)

// ParseFloat converts a decimal field string to a float64. Failure is
// fatal with the offending field name.
func ParseFloat(file, field, value string, row int) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, newValueError(file, field, value, row, errors.Wrap(err, "not a floating point number"))
	}
	return f, nil
}

// ParseUint converts a decimal field string to a non-negative integer.
func ParseUint(file, field, value string, row int) (uint, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, newValueError(file, field, value, row, errors.Wrap(err, "not an unsigned integer"))
	}
	return uint(n), nil
}

// ParseDate expects exactly eight characters YYYYMMDD: year (0:4),
// month (4:6), day (6:8). It asserts 1 <= month <= 12 and day <= 31,
// but performs no further calendar validation (e.g. Feb 30 passes).
func ParseDate(file, field, value string, row int) (model.Date, error) {
	if len(value) != 8 {
		return model.Date{}, newValueError(file, field, value, row, errors.Errorf("expected 8 characters, got %d", len(value)))
	}

	year, err := strconv.Atoi(value[0:4])
	if err != nil {
		return model.Date{}, newValueError(file, field, value, row, errors.Wrap(err, "invalid year"))
	}
	month, err := strconv.Atoi(value[4:6])
	if err != nil {
		return model.Date{}, newValueError(file, field, value, row, errors.Wrap(err, "invalid month"))
	}
	day, err := strconv.Atoi(value[6:8])
	if err != nil {
		return model.Date{}, newValueError(file, field, value, row, errors.Wrap(err, "invalid day"))
	}

	if month < 1 || month > 12 {
		return model.Date{}, newValueError(file, field, value, row, errors.Errorf("month %d out of range", month))
	}
	if day > 31 {
		return model.Date{}, newValueError(file, field, value, row, errors.Errorf("day %d out of range", day))
	}

	return model.Date{Year: year, Month: month, Day: day}, nil
}

// ParseTime splits a field on ':' into exactly three components of
// widths {1 or 2, 2, 2} and computes h*3600 + m*60 + s. Minutes and
// seconds must be < 60; hours are unconstrained, allowing GTFS's
// next-day times (>= 24:00:00) to parse numerically. An empty string
// is fatal: missing-time support is explicitly out of scope.
func ParseTime(file, field, value string, row int) (uint, error) {
	if value == "" {
		return 0, newValueError(file, field, value, row, errors.New("missing time"))
	}

	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, newValueError(file, field, value, row, errors.Errorf("expected 3 ':'-separated components, got %d", len(parts)))
	}
	if l := len(parts[0]); l != 1 && l != 2 {
		return 0, newValueError(file, field, value, row, errors.Errorf("hour component has invalid width %d", l))
	}
	if len(parts[1]) != 2 {
		return 0, newValueError(file, field, value, row, errors.Errorf("minute component has invalid width %d", len(parts[1])))
	}
	if len(parts[2]) != 2 {
		return 0, newValueError(file, field, value, row, errors.Errorf("second component has invalid width %d", len(parts[2])))
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, newValueError(file, field, value, row, errors.Wrap(err, "invalid hour"))
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m >= 60 {
		return 0, newValueError(file, field, value, row, errors.Errorf("invalid minute %q", parts[1]))
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil || s >= 60 {
		return 0, newValueError(file, field, value, row, errors.Errorf("invalid second %q", parts[2]))
	}

	return uint(h)*3600 + uint(m)*60 + uint(s), nil
}

// ParseBool accepts GTFS's "0"/"1" boolean encoding.
func ParseBool(file, field, value string, row int) (bool, error) {
	switch value {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, newValueError(file, field, value, row, errors.Errorf("expected \"0\" or \"1\""))
	}
}

// ParseLocationType maps "" or "0" to stop, "1" to station.
func ParseLocationType(file, field, value string, row int) (model.LocationType, error) {
	switch value {
	case "", "0":
		return model.LocationTypeStop, nil
	case "1":
		return model.LocationTypeStation, nil
	default:
		return 0, newValueError(file, field, value, row, errors.Errorf("unknown location_type"))
	}
}

// ParseRouteType maps the encoded "0"-"7" route_type codes.
func ParseRouteType(file, field, value string, row int) (model.RouteType, error) {
	switch value {
	case "0":
		return model.RouteTypeTram, nil
	case "1":
		return model.RouteTypeSubway, nil
	case "2":
		return model.RouteTypeRail, nil
	case "3":
		return model.RouteTypeBus, nil
	case "4":
		return model.RouteTypeFerry, nil
	case "5":
		return model.RouteTypeCableCar, nil
	case "6":
		return model.RouteTypeGondola, nil
	case "7":
		return model.RouteTypeFunicular, nil
	default:
		return 0, newValueError(file, field, value, row, errors.Errorf("unknown route_type"))
	}
}

// ParseDirection maps "0" -> a, "1" -> b.
func ParseDirection(file, field, value string, row int) (model.Direction, error) {
	switch value {
	case "0":
		return model.DirectionA, nil
	case "1":
		return model.DirectionB, nil
	default:
		return 0, newValueError(file, field, value, row, errors.Errorf("unknown direction_id"))
	}
}

// ParseMarshal maps the pickup_type/drop_off_type "0"-"3" codes.
func ParseMarshal(file, field, value string, row int) (model.Marshal, error) {
	switch value {
	case "0":
		return model.MarshalScheduled, nil
	case "1":
		return model.MarshalNoPickup, nil
	case "2":
		return model.MarshalPhoneAhead, nil
	case "3":
		return model.MarshalCoordinateWithDriver, nil
	default:
		return 0, newValueError(file, field, value, row, errors.Errorf("unknown marshal type"))
	}
}

// ParseException maps "1" -> added, "2" -> removed.
func ParseException(file, field, value string, row int) (model.ExceptionType, error) {
	switch value {
	case "1":
		return model.ExceptionAdded, nil
	case "2":
		return model.ExceptionRemoved, nil
	default:
		return 0, newValueError(file, field, value, row, errors.Errorf("unknown exception_type"))
	}
}
