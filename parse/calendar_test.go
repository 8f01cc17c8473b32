package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCalendarWeekdayBitmask(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "calendar.txt",
		"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
		"wk,1,1,1,1,1,0,0,20240101,20241231",
	)

	calendars, err := LoadCalendar(dir)
	require.NoError(t, err)

	c := calendars["wk"]
	require.NotNil(t, c)
	assert.True(t, c.Weekdays.Has(time.Monday))
	assert.True(t, c.Weekdays.Has(time.Friday))
	assert.False(t, c.Weekdays.Has(time.Saturday))
	assert.False(t, c.Weekdays.Has(time.Sunday))
}

func TestLoadCalendarDuplicateService(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "calendar.txt",
		"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
		"wk,1,0,0,0,0,0,0,20240101,20241231",
		"wk,0,1,0,0,0,0,0,20240101,20241231",
	)

	_, err := LoadCalendar(dir)
	var integrityErr *IntegrityError
	require.ErrorAs(t, err, &integrityErr)
}
