// Package testutil provides fixture builders shared by this module's
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tidbyt.dev/daytrip"
)

// BuildFeedDir writes files as a directory of GTFS CSV files under a
// fresh temp directory and returns its path. Each value in files is
// the line-by-line content of one CSV file, joined with newlines.
// Missing required files are filled in with minimal header-only (or
// near-empty) stand-ins so fixtures only spell out what they test.
func BuildFeedDir(t testing.TB, files map[string][]string) string {
	t.Helper()

	if files["agency.txt"] == nil {
		files["agency.txt"] = []string{
			"agency_id,agency_name,agency_url,agency_timezone",
			"agency,Agency,http://example.com,UTC",
		}
	}
	if files["stops.txt"] == nil {
		files["stops.txt"] = []string{"stop_id,stop_name,stop_lat,stop_lon"}
	}
	if files["routes.txt"] == nil {
		files["routes.txt"] = []string{"route_id,route_short_name,route_long_name,route_type"}
	}
	if files["trips.txt"] == nil {
		files["trips.txt"] = []string{"route_id,service_id,trip_id"}
	}
	if files["stop_times.txt"] == nil {
		files["stop_times.txt"] = []string{"trip_id,arrival_time,departure_time,stop_id,stop_sequence"}
	}
	if files["calendar.txt"] == nil {
		files["calendar.txt"] = []string{
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
		}
	}
	if files["calendar_dates.txt"] == nil {
		files["calendar_dates.txt"] = []string{"service_id,date,exception_type"}
	}

	dir := t.TempDir()
	for name, lines := range files {
		content := strings.Join(lines, "\n") + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir
}

// LoadFeed builds a fixture directory from files and loads it into a
// Feed, failing the test on any load error.
func LoadFeed(t testing.TB, files map[string][]string) *daytrip.Feed {
	t.Helper()

	dir := BuildFeedDir(t, files)
	feed, err := daytrip.Load(dir)
	require.NoError(t, err)

	return feed
}
