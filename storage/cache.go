// Package storage provides an optional on-disk cache for loaded
// feeds, keyed by the source directory's modification time. Parsing a
// large stop_times.txt dominates the cost of repeated runs against
// the same directory; a cache hit skips CSV parsing entirely.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"tidbyt.dev/daytrip"
	"tidbyt.dev/daytrip/model"
)

// Cache is a local SQLite-backed store of previously loaded feeds.
// Each entry is addressed by the data directory's path and mtime: a
// hit is only returned if the directory has not been touched since it
// was cached.
type Cache struct {
	db *sql.DB
}

// Open creates or opens a cache database at path. Pass ":memory:" for
// a process-local, non-persistent cache.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS feed_snapshot (
    dir TEXT NOT NULL,
    mtime TIMESTAMP NOT NULL,
    cached_at TIMESTAMP NOT NULL,
    payload BLOB NOT NULL,
PRIMARY KEY (dir)
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating feed_snapshot table: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// snapshot is the JSON-serializable shape of a Feed, used only as the
// cache's on-disk payload.
type snapshot struct {
	Agencies      map[string]*model.Agency         `json:"agencies"`
	Stops         map[string]*model.Stop           `json:"stops"`
	Routes        map[string]*model.Route          `json:"routes"`
	Trips         map[string]*model.Trip           `json:"trips"`
	StopTimes     map[string][]*model.StopTime     `json:"stop_times"`
	Calendars     map[string]*model.Calendar       `json:"calendars"`
	CalendarDates map[string][]*model.CalendarDate `json:"calendar_dates"`
}

func toSnapshot(f *daytrip.Feed) snapshot {
	return snapshot{
		Agencies:      f.Agencies,
		Stops:         f.Stops,
		Routes:        f.Routes,
		Trips:         f.Trips,
		StopTimes:     f.StopTimes,
		Calendars:     f.Calendars,
		CalendarDates: f.CalendarDates,
	}
}

func (s snapshot) toFeed() *daytrip.Feed {
	return &daytrip.Feed{
		Agencies:      s.Agencies,
		Stops:         s.Stops,
		Routes:        s.Routes,
		Trips:         s.Trips,
		StopTimes:     s.StopTimes,
		Calendars:     s.Calendars,
		CalendarDates: s.CalendarDates,
	}
}

// dirMTime returns the modification time of the newest file directly
// inside dir (not recursive) -- GTFS feeds are flat directories of
// CSV files, so this is sufficient to detect a refreshed feed.
func dirMTime(dir string) (time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading %s: %w", dir, err)
	}

	var latest time.Time
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return time.Time{}, fmt.Errorf("stat %s: %w", filepath.Join(dir, e.Name()), err)
		}
		if info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest, nil
}

// Load returns the cached feed for dir if present and not stale
// relative to dir's current mtime. ok is false on a cache miss; err is
// non-nil only on a genuine I/O or decoding failure.
func (c *Cache) Load(dir string) (feed *daytrip.Feed, ok bool, err error) {
	mtime, err := dirMTime(dir)
	if err != nil {
		return nil, false, err
	}

	var cachedMTime time.Time
	var payload []byte
	row := c.db.QueryRow(`SELECT mtime, payload FROM feed_snapshot WHERE dir = ?`, dir)
	switch err := row.Scan(&cachedMTime, &payload); err {
	case sql.ErrNoRows:
		return nil, false, nil
	case nil:
		// fall through
	default:
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	if cachedMTime.Before(mtime) {
		return nil, false, nil
	}

	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}

	return snap.toFeed(), true, nil
}

// Store saves feed as dir's cache entry, replacing any previous one.
func (c *Cache) Store(dir string, feed *daytrip.Feed) error {
	mtime, err := dirMTime(dir)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(toSnapshot(feed))
	if err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}

	_, err = c.db.Exec(`
INSERT INTO feed_snapshot (dir, mtime, cached_at, payload) VALUES (?, ?, ?, ?)
ON CONFLICT (dir) DO UPDATE SET mtime = excluded.mtime, cached_at = excluded.cached_at, payload = excluded.payload`,
		dir, mtime, time.Now(), payload)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}
