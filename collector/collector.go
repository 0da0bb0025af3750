// Package collector runs the polling stage: it repeatedly asks the flight
// feed for positions inside the Arctic box, appends each batch of
// trackpoints to the on-disk store, and maintains the per-flight summaries.
// A flight absent from enough consecutive polls is finalized. A failed poll
// cycle is logged and skipped; it never kills the run. The same accumulation
// path can also replay a past window from the feed's historic endpoint.
package collector

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/skypies/geo"

	pr "github.com/arcticpaths/polarrush"
	"github.com/arcticpaths/polarrush/store"
)

// Fetcher is what the collector needs from the fr24 client. The fetcher owns
// its own retry policy; by the time an error gets here, it is final for that
// poll cycle.
type Fetcher interface {
	LookupLivePositions(ctx context.Context, box geo.LatlongBox) ([]pr.FlightSnapshot, error)
}

// HistoricFetcher is the past-tense version, for backfill runs.
type HistoricFetcher interface {
	LookupHistoricPositions(ctx context.Context, box geo.LatlongBox, ts time.Time) ([]pr.FlightSnapshot, error)
}

type Collector struct {
	Fetcher  Fetcher
	Store   *store.Store

	Box      geo.LatlongBox
	Interval time.Duration
	MaxPolls int           // stop after this many poll cycles (0 = no cap)
	MaxDuration time.Duration // stop after this long (0 = no cap)
	LiveGap  int           // consecutive absent polls before a flight is finalized

	RunID    string

	summaries map[string]*pr.FlightSummary
	live      LiveSet
}

func NewCollector(fetcher Fetcher, s *store.Store, box geo.LatlongBox) *Collector {
	return &Collector{
		Fetcher: fetcher,
		Store: s,
		Box: box,
		Interval: 15*time.Minute, // matches the feed's historic granularity
		LiveGap: 2,
		RunID: uuid.New().String(),
		summaries: map[string]*pr.FlightSummary{},
		live: LiveSet{},
	}
}

// Summaries returns the current summary set, ordered by flight ID.
func (c *Collector)Summaries() []pr.FlightSummary {
	ret := []pr.FlightSummary{}
	for _,fs := range c.summaries {
		ret = append(ret, *fs)
	}
	sort.Slice(ret, func(i,j int) bool { return ret[i].FlightID < ret[j].FlightID })
	return ret
}

// {{{ c.Run

func (c *Collector)Run(ctx context.Context) error {
	start := time.Now()
	nPolls := 0

	log.Printf("collector: run %s starting, box=%s", c.RunID, fr24BoundsForLog(c.Box))

	for {
		if err := c.pollOnce(ctx); err != nil {
			// Retries are already exhausted inside the fetcher; skip this cycle.
			log.Printf("collector: poll cycle failed, skipping: %v", err)
		}
		nPolls++

		if c.MaxPolls > 0 && nPolls >= c.MaxPolls { break }
		if c.MaxDuration > 0 && time.Since(start) >= c.MaxDuration { break }

		select {
		case <-ctx.Done():
			return c.finish(ctx.Err())
		case <-time.After(c.Interval):
		}
	}

	return c.finish(nil)
}

func (c *Collector)finish(cause error) error {
	// End of run: everything still live is now final.
	for _,id := range c.live.Drain() {
		if fs,exists := c.summaries[id]; exists {
			fs.Finalize()
		}
	}
	if err := c.flushSummaries(); err != nil {
		return err
	}
	log.Printf("collector: run %s done, %d flights", c.RunID, len(c.summaries))
	return cause
}

// }}}
// {{{ c.Backfill

// Backfill replays a past window through the same accumulation path as a
// live run, stepping the feed's historic endpoint at Interval granularity
// from the start of the window up to now. A failed step is logged and
// skipped, like a failed live poll.
func (c *Collector)Backfill(ctx context.Context, fetcher HistoricFetcher, window time.Duration) error {
	end := time.Now().UTC()
	start := end.Add(-window)

	log.Printf("collector: run %s backfilling %s - %s, box=%s", c.RunID,
		start.Format("15:04:05"), end.Format("15:04:05"), fr24BoundsForLog(c.Box))

	for ts := start; !ts.After(end); ts = ts.Add(c.Interval) {
		select {
		case <-ctx.Done():
			return c.finish(ctx.Err())
		default:
		}

		snapshots,err := fetcher.LookupHistoricPositions(ctx, c.Box, ts)
		if err != nil {
			log.Printf("collector: backfill step %s failed, skipping: %v",
				ts.Format("15:04:05"), err)
			continue
		}
		if err := c.ingest(snapshots, ts); err != nil {
			return err
		}
	}

	return c.finish(nil)
}

// }}}
// {{{ c.pollOnce

func (c *Collector)pollOnce(ctx context.Context) error {
	snapshots,err := c.Fetcher.LookupLivePositions(ctx, c.Box)
	if err != nil {
		return err
	}
	return c.ingest(snapshots, time.Now().UTC())
}

// ingest runs one batch through the accumulation path. `now` is the cycle's
// clock: wall time for a live poll, the step's timestamp for a backfill.
func (c *Collector)ingest(snapshots []pr.FlightSnapshot, now time.Time) error {
	tps := []pr.Trackpoint{}
	for _,snap := range snapshots {
		tps = append(tps, snap.Trackpoint)
	}

	// Append this batch before anything else; if the store write fails, the
	// summaries shouldn't claim points the disk never got.
	if err := c.Store.AppendTrackpoints(tps); err != nil {
		return err
	}

	seen := map[string]bool{}
	for _,snap := range snapshots {
		seen[snap.FlightID] = true
		c.live.MarkSeen(snap.FlightID, now)

		if fs,exists := c.summaries[snap.FlightID]; exists {
			fs.Update(snap.Trackpoint)
		} else {
			c.summaries[snap.FlightID] = pr.NewFlightSummary(c.RunID, snap.Trackpoint, snap.Callsign)
		}
	}

	for _,id := range c.live.AgeOut(seen, c.LiveGap) {
		if fs,exists := c.summaries[id]; exists {
			fs.Finalize()
			log.Printf("collector: finalized %s", fs)
		}
	}

	if err := c.flushSummaries(); err != nil {
		return err
	}

	log.Printf("collector: poll found %d aircraft (%d flights tracked)", len(snapshots),
		len(c.summaries))
	return nil
}

func (c *Collector)flushSummaries() error {
	return c.Store.WriteSummaries(c.Summaries())
}

// }}}

func fr24BoundsForLog(box geo.LatlongBox) string {
	return box.SW.String() + "-" + box.NE.String()
}
