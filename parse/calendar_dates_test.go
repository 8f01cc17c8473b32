package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidbyt.dev/daytrip/model"
)

func TestLoadCalendarDatesBucketsByService(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "calendar_dates.txt",
		"service_id,date,exception_type",
		"wk,20240704,2",
		"wk,20240705,1",
		"we,20240704,1",
	)

	byService, err := LoadCalendarDates(dir)
	require.NoError(t, err)

	require.Len(t, byService["wk"], 2)
	assert.Equal(t, model.ExceptionRemoved, byService["wk"][0].Exception)
	assert.Equal(t, model.ExceptionAdded, byService["wk"][1].Exception)
	require.Len(t, byService["we"], 1)
}
