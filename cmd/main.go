package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tidbyt.dev/daytrip"
	"tidbyt.dev/daytrip/model"
	"tidbyt.dev/daytrip/scheduler"
	"tidbyt.dev/daytrip/storage"
)

var rootCmd = &cobra.Command{
	Use:   "daytrip <agency_id> <date> <data_dir>",
	Short: "Replays a GTFS feed's schedule for one calendar day",
	Long: "Loads a GTFS static feed from data_dir and either replays agency_id's\n" +
		"schedule for the given day as a stream of events, or -- when date has\n" +
		"no weekday prefix -- prints a summary of the feed's contents.",
	Args:         cobra.ExactArgs(3),
	RunE:         run,
	SilenceUsage: true,
}

var (
	useCache   bool
	queueDepth int
)

func init() {
	rootCmd.Flags().BoolVar(&useCache, "cache", false, "cache loaded feeds on disk, keyed by data_dir's mtime")
	rootCmd.Flags().IntVar(&queueDepth, "queue-depth", 16, "event channel buffer size")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	agencyID, dateArg, dataDir := args[0], args[1], args[2]

	weekday, date, schedule, err := parseWeekdayDate(dateArg)
	if err != nil {
		return err
	}

	feed, err := loadFeed(dataDir)
	if err != nil {
		return fmt.Errorf("loading feed: %w", err)
	}
	if !schedule {
		fmt.Print(feed.Describe())
		return nil
	}

	events, err := scheduler.Simulate(feed, agencyID, weekday, date, scheduler.WithQueueDepth(queueDepth))
	if err != nil {
		return fmt.Errorf("simulating %s: %w", dateArg, err)
	}

	for event := range events {
		printEvent(event)
	}

	return nil
}

// loadFeed loads dataDir, consulting the on-disk cache first when
// --cache is set and storing a fresh load back into it.
func loadFeed(dataDir string) (*daytrip.Feed, error) {
	if !useCache {
		return daytrip.Load(dataDir)
	}

	cache, err := storage.Open("daytrip-cache.db")
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	defer cache.Close()

	if feed, ok, err := cache.Load(dataDir); err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	} else if ok {
		return feed, nil
	}

	feed, err := daytrip.Load(dataDir)
	if err != nil {
		return nil, err
	}

	if err := cache.Store(dataDir, feed); err != nil {
		return nil, fmt.Errorf("writing cache: %w", err)
	}

	return feed, nil
}

// parseWeekdayDate accepts either "Mon 2006-01-02" (scheduler mode,
// schedule == true) or a bare "2006-01-02" (describe mode). Anything
// else is an error.
func parseWeekdayDate(s string) (weekday time.Weekday, date model.Date, schedule bool, err error) {
	if t, err := time.Parse("Mon 2006-01-02", s); err == nil {
		return t.Weekday(), model.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, true, nil
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return 0, model.Date{}, false, nil
	}
	return 0, model.Date{}, false, fmt.Errorf("date %q: want \"Mon 2006-01-02\" or \"2006-01-02\"", s)
}

func printEvent(event scheduler.Event) {
	switch e := event.(type) {
	case scheduler.StartEvents:
		fmt.Printf("%d active services, %d active trips.\n", e.Services, e.Trips)
	case scheduler.StartTrip:
		fmt.Printf("%d starttrip %s\n", e.At, e.Trip.ID)
	case scheduler.StopArrival:
		fmt.Printf("%d stoparrival %s %s\n", e.At, e.Trip.ID, e.StopTime.StopID)
	case scheduler.EndTrip:
		fmt.Printf("%d endtrip %s\n", e.At, e.Trip.ID)
	case scheduler.EndEvents:
		fmt.Println("end")
	}
}
