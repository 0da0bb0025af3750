// polarrush runs the Arctic flight pipeline, one stage at a time:
//
//   polarrush [flags] collect    poll the feed, accumulate tracks + summaries
//   polarrush [flags] enrich     join summaries against the airport table
//   polarrush [flags] analyze    mark flights that crossed the threshold
//   polarrush [flags] render     draw the polar map
//
// Stages read and write the CSV store under -data, so they can be run
// separately or back to back.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	pr "github.com/arcticpaths/polarrush"
	"github.com/arcticpaths/polarrush/airports"
	"github.com/arcticpaths/polarrush/analysis"
	"github.com/arcticpaths/polarrush/collector"
	"github.com/arcticpaths/polarrush/config"
	"github.com/arcticpaths/polarrush/enrich"
	"github.com/arcticpaths/polarrush/fr24"
	"github.com/arcticpaths/polarrush/render"
	"github.com/arcticpaths/polarrush/store"
)

var(
	ctx = context.Background()
	fConfig string
	fDataDir string
	fPolls int
	fHours int
	fOut string
	fOnlyCrossed bool
	fBackfillHours int
)

func init() {
	flag.StringVar(&fConfig, "config", "polarrush.yaml", "config file")
	flag.StringVar(&fDataDir, "data", "", "data dir (overrides config)")
	flag.IntVar(&fPolls, "polls", 0, "cap on poll cycles (overrides config)")
	flag.IntVar(&fHours, "hours", 0, "cap on run duration (overrides config)")
	flag.StringVar(&fOut, "out", "", "output file for render (overrides config)")
	flag.BoolVar(&fOnlyCrossed, "crossed", false, "render only threshold-crossing flights")
	flag.IntVar(&fBackfillHours, "backfill", 0, "collect from the historic feed over the past N hours instead of polling live")
	flag.Parse()
}

func loadConfig() config.Config {
	cfg,err := config.LoadFile(fConfig)
	if err != nil { log.Fatal(err) }

	if fDataDir != "" { cfg.DataDir = fDataDir }
	if fPolls > 0 { cfg.MaxPolls = fPolls }
	if fHours > 0 { cfg.MaxDurationHours = fHours }
	if fOut != "" { cfg.OutputFile = fOut }

	return cfg
}

func openStore(cfg config.Config) *store.Store {
	s,err := store.NewStore(cfg.DataDir)
	if err != nil { log.Fatal(err) }
	return s
}

func newClient() *fr24.Fr24 {
	token,err := config.APIToken()
	if err != nil { log.Fatal(err) }

	fr,err := fr24.NewFr24(&http.Client{Timeout: 30*time.Second}, token)
	if err != nil { log.Fatal(err) }
	return fr
}

// {{{ runCollect

func runCollect(cfg config.Config) {
	client := newClient()
	c := collector.NewCollector(client, openStore(cfg), cfg.Bounds.Box())
	c.Interval = time.Duration(cfg.PollIntervalMinutes) * time.Minute
	c.MaxPolls = cfg.MaxPolls
	c.MaxDuration = time.Duration(cfg.MaxDurationHours) * time.Hour
	if cfg.LiveGapPolls > 0 { c.LiveGap = cfg.LiveGapPolls }

	if fBackfillHours > 0 {
		window := time.Duration(fBackfillHours) * time.Hour
		if err := c.Backfill(ctx, client, window); err != nil {
			log.Fatal(err)
		}
		return
	}

	if c.MaxPolls == 0 && c.MaxDuration == 0 {
		c.MaxDuration = 24*time.Hour // somebody forgot to bound the run
	}

	if err := c.Run(ctx); err != nil {
		log.Fatal(err)
	}
}

// }}}
// {{{ runEnrich

func runEnrich(cfg config.Config) {
	s := openStore(cfg)

	table,err := airports.LoadTableFile(cfg.AirportsFile)
	if err != nil { log.Fatal(err) }
	log.Printf("enrich: %d airports loaded", table.Len())

	summaries,err := s.ReadSummaries()
	if err != nil { log.Fatal(err) }
	tracks,err := s.ReadTracks()
	if err != nil { log.Fatal(err) }

	e := enrich.NewEnricher(table, newClient())
	if cfg.ConfidenceRadiusKM > 0 { e.ConfidenceRadiusKM = cfg.ConfidenceRadiusKM }

	enriched,err := e.EnrichAll(ctx, summaries, tracks)
	if err != nil { log.Fatal(err) }

	if err := s.WriteEnriched(enriched); err != nil { log.Fatal(err) }

	for _,ef := range enriched {
		fmt.Printf("%s\n", ef)
	}
}

// }}}
// {{{ runAnalyze

func runAnalyze(cfg config.Config) {
	s := openStore(cfg)

	summaries,err := s.ReadSummaries()
	if err != nil { log.Fatal(err) }
	tracks,err := s.ReadTracks()
	if err != nil { log.Fatal(err) }

	crossings := analysis.MarkCrossings(tracks, summaries, cfg.ThresholdLat)
	if err := s.WriteSummaries(summaries); err != nil { log.Fatal(err) }

	n := 0
	for _,fs := range summaries {
		if cr,exists := crossings[fs.FlightID]; exists && cr.Crossed {
			fmt.Printf("%s\n", cr)
			n++
		}
	}
	fmt.Printf("%d of %d flights crossed %.0fN\n", n, len(summaries), cfg.ThresholdLat)
}

// }}}
// {{{ runRender

func runRender(cfg config.Config) {
	s := openStore(cfg)

	table,err := airports.LoadTableFile(cfg.AirportsFile)
	if err != nil { log.Fatal(err) }

	flights,err := s.ReadEnriched(table)
	if err != nil {
		// No enriched table yet; render straight off the summaries.
		log.Printf("render: no enriched table (%v), using bare summaries", err)
		summaries,err2 := s.ReadSummaries()
		if err2 != nil { log.Fatal(err2) }
		for _,fs := range summaries {
			flights = append(flights, pr.EnrichedFlight{
				FlightSummary: fs,
				OriginMatch: pr.MatchUnresolved,
				DestinationMatch: pr.MatchUnresolved,
			})
		}
	}

	tracks,err := s.ReadTracks()
	if err != nil { log.Fatal(err) }

	r := render.NewRenderer()
	r.ThresholdLat = cfg.ThresholdLat
	r.LandFile = cfg.LandFile
	r.OnlyCrossed = fOnlyCrossed

	if err := r.Render(flights, tracks, cfg.OutputFile); err != nil {
		log.Fatal(err)
	}
	log.Printf("render: wrote %s", cfg.OutputFile)
}

// }}}

func main() {
	cfg := loadConfig()

	if len(flag.Args()) == 0 {
		log.Fatal("usage: polarrush [flags] collect|enrich|analyze|render")
	}

	for _,stage := range flag.Args() {
		switch stage {
		case "collect": runCollect(cfg)
		case "enrich":  runEnrich(cfg)
		case "analyze": runAnalyze(cfg)
		case "render":  runRender(cfg)
		default:
			log.Fatalf("unknown stage %q", stage)
		}
	}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
