// Package store is the on-disk CSV home for trackpoints, summaries, and
// enriched flights. Trackpoints are append-only and flushed every poll
// cycle, so a crashed collection run keeps everything written so far; the
// summary and enriched tables are rewritten wholesale by their stages.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/skypies/geo"

	pr "github.com/arcticpaths/polarrush"
	"github.com/arcticpaths/polarrush/airports"
)

const(
	KTrackpointsFile = "arctic_trackpoints.csv"
	KSummariesFile   = "arctic_summaries.csv"
	KEnrichedFile    = "arctic_enriched.csv"

	kTimeFormat = time.RFC3339
)

type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return &Store{Dir:dir}, nil
}

func (s *Store)path(name string) string { return filepath.Join(s.Dir, name) }

// {{{ s.AppendTrackpoints

var trackpointHeaders = []string{
	"fr24_id","timestamp","lat","lon","alt","gspeed","track","squawk",
}

// AppendTrackpoints writes one batch to the end of the trackpoints file,
// creating it (with a header row) on first use.
func (s *Store)AppendTrackpoints(tps []pr.Trackpoint) error {
	if len(tps) == 0 { return nil }

	filename := s.path(KTrackpointsFile)
	_,statErr := os.Stat(filename)
	isNew := os.IsNotExist(statErr)

	f,err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer f.Close()

	csvWriter := csv.NewWriter(f)
	if isNew {
		csvWriter.Write(trackpointHeaders)
	}
	for _,tp := range tps {
		csvWriter.Write([]string{
			tp.FlightID,
			tp.TimestampUTC.Format(kTimeFormat),
			strconv.FormatFloat(tp.Lat, 'f', 5, 64),
			strconv.FormatFloat(tp.Long, 'f', 5, 64),
			strconv.FormatFloat(tp.Altitude, 'f', 0, 64),
			strconv.FormatFloat(tp.GroundSpeed, 'f', 0, 64),
			strconv.FormatFloat(tp.Heading, 'f', 0, 64),
			tp.Squawk,
		})
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// }}}
// {{{ s.ReadTracks

// ReadTracks loads the whole trackpoints file and groups it into per-flight
// Tracks, each sorted by timestamp. Unparseable rows are logged and skipped.
func (s *Store)ReadTracks() (map[string]pr.Track, error) {
	f,err := os.Open(s.path(KTrackpointsFile))
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer f.Close()
	return ReadTracksFrom(f)
}

func ReadTracksFrom(ioreader io.Reader) (map[string]pr.Track, error) {
	ret := map[string]pr.Track{}
	rdr := NewRowReader(ioreader)
	n := 1

	for {
		row,err := rdr.Read()
		if err == io.EOF { break }
		n++
		if err != nil {
			log.Printf("store: trackpoint row %d unparseable, skipping: %v", n, err)
			continue
		}

		tp,err := rowToTrackpoint(row)
		if err != nil {
			log.Printf("store: trackpoint row %d: %v, skipping", n, err)
			continue
		}
		ret[tp.FlightID] = append(ret[tp.FlightID], tp)
	}

	for id := range ret {
		ret[id].Sort()
	}
	return ret, nil
}

func rowToTrackpoint(r Row) (pr.Trackpoint, error) {
	if r["fr24_id"] == "" {
		return pr.Trackpoint{}, fmt.Errorf("no fr24_id")
	}
	t,err := time.Parse(kTimeFormat, r["timestamp"])
	if err != nil {
		return pr.Trackpoint{}, fmt.Errorf("bad timestamp %q", r["timestamp"])
	}
	lat,latErr  := strconv.ParseFloat(r["lat"], 64)
	long,longErr := strconv.ParseFloat(r["lon"], 64)
	if latErr != nil || longErr != nil {
		return pr.Trackpoint{}, fmt.Errorf("bad position (%q,%q)", r["lat"], r["lon"])
	}
	alt,_    := strconv.ParseFloat(r["alt"], 64)
	gspeed,_ := strconv.ParseFloat(r["gspeed"], 64)
	track,_  := strconv.ParseFloat(r["track"], 64)

	return pr.Trackpoint{
		FlightID: r["fr24_id"],
		TimestampUTC: t.UTC(),
		Latlong: geo.Latlong{Lat:lat, Long:long},
		Altitude: alt,
		GroundSpeed: gspeed,
		Heading: track,
		Squawk: r["squawk"],
	}, nil
}

// }}}

// {{{ s.WriteSummaries, s.ReadSummaries

var summaryHeaders = []string{
	"fr24_id","callsign","airline","run_id","first_seen","last_seen",
	"position_count","max_latitude","crossed_threshold","finalized",
}

func (s *Store)WriteSummaries(summaries []pr.FlightSummary) error {
	f,err := os.Create(s.path(KSummariesFile))
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer f.Close()

	csvWriter := csv.NewWriter(f)
	csvWriter.Write(summaryHeaders)
	for _,fs := range summaries {
		csvWriter.Write(summaryToRow(fs))
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func summaryToRow(fs pr.FlightSummary) []string {
	return []string{
		fs.FlightID,
		fs.Callsign,
		fs.AirlineCode,
		fs.RunID,
		fs.FirstSeen.Format(kTimeFormat),
		fs.LastSeen.Format(kTimeFormat),
		strconv.Itoa(fs.PointCount),
		strconv.FormatFloat(fs.MaxLatitude, 'f', 5, 64),
		strconv.FormatBool(fs.CrossedThreshold),
		strconv.FormatBool(fs.Finalized),
	}
}

func (s *Store)ReadSummaries() ([]pr.FlightSummary, error) {
	f,err := os.Open(s.path(KSummariesFile))
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer f.Close()

	ret := []pr.FlightSummary{}
	rdr := NewRowReader(f)
	n := 1

	for {
		row,err := rdr.Read()
		if err == io.EOF { break }
		n++
		if err != nil {
			log.Printf("store: summary row %d unparseable, skipping: %v", n, err)
			continue
		}
		fs,err := rowToSummary(row)
		if err != nil {
			log.Printf("store: summary row %d: %v, skipping", n, err)
			continue
		}
		ret = append(ret, fs)
	}

	return ret, nil
}

func rowToSummary(r Row) (pr.FlightSummary, error) {
	if r["fr24_id"] == "" {
		return pr.FlightSummary{}, fmt.Errorf("no fr24_id")
	}
	first,err1 := time.Parse(kTimeFormat, r["first_seen"])
	last,err2  := time.Parse(kTimeFormat, r["last_seen"])
	if err1 != nil || err2 != nil {
		return pr.FlightSummary{}, fmt.Errorf("bad seen-times (%q,%q)", r["first_seen"], r["last_seen"])
	}
	count,_   := strconv.Atoi(r["position_count"])
	maxLat,_  := strconv.ParseFloat(r["max_latitude"], 64)
	crossed,_ := strconv.ParseBool(r["crossed_threshold"])
	final,_   := strconv.ParseBool(r["finalized"])

	return pr.FlightSummary{
		FlightID: r["fr24_id"],
		Callsign: r["callsign"],
		AirlineCode: r["airline"],
		RunID: r["run_id"],
		FirstSeen: first.UTC(),
		LastSeen: last.UTC(),
		PointCount: count,
		MaxLatitude: maxLat,
		CrossedThreshold: crossed,
		Finalized: final,
	}, nil
}

// }}}
// {{{ s.WriteEnriched, s.ReadEnriched

var enrichedHeaders = append(append([]string{}, summaryHeaders...),
	"orig_icao","orig_iata","orig_match","dest_icao","dest_iata","dest_match")

func (s *Store)WriteEnriched(flights []pr.EnrichedFlight) error {
	f,err := os.Create(s.path(KEnrichedFile))
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer f.Close()

	csvWriter := csv.NewWriter(f)
	csvWriter.Write(enrichedHeaders)
	for _,ef := range flights {
		row := summaryToRow(ef.FlightSummary)
		row = append(row, airportCols(ef.Origin)...)
		row = append(row, string(ef.OriginMatch))
		row = append(row, airportCols(ef.Destination)...)
		row = append(row, string(ef.DestinationMatch))
		csvWriter.Write(row)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func airportCols(a *airports.Airport) []string {
	if a == nil { return []string{"",""} } // unresolved; leave the cells empty
	return []string{a.ICAO, a.IATA}
}

// ReadEnriched needs the airport table back, to turn codes into records.
func (s *Store)ReadEnriched(table *airports.Table) ([]pr.EnrichedFlight, error) {
	f,err := os.Open(s.path(KEnrichedFile))
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer f.Close()

	ret := []pr.EnrichedFlight{}
	rdr := NewRowReader(f)
	n := 1

	for {
		row,err := rdr.Read()
		if err == io.EOF { break }
		n++
		if err != nil {
			log.Printf("store: enriched row %d unparseable, skipping: %v", n, err)
			continue
		}
		fs,err := rowToSummary(row)
		if err != nil {
			log.Printf("store: enriched row %d: %v, skipping", n, err)
			continue
		}

		ef := pr.EnrichedFlight{
			FlightSummary: fs,
			OriginMatch: pr.MatchKind(row["orig_match"]),
			DestinationMatch: pr.MatchKind(row["dest_match"]),
		}
		ef.Origin, ef.OriginMatch = lookupStored(table, row["orig_icao"], ef.OriginMatch)
		ef.Destination, ef.DestinationMatch = lookupStored(table, row["dest_icao"], ef.DestinationMatch)
		ret = append(ret, ef)
	}

	return ret, nil
}

// lookupStored turns a stored ICAO code back into an airport record. If the
// table no longer knows the code, the match downgrades to unresolved; a nil
// airport must never carry a confident match kind.
func lookupStored(table *airports.Table, icao string, match pr.MatchKind) (*airports.Airport, pr.MatchKind) {
	if icao == "" {
		return nil, match
	}
	a := table.ByICAO(icao)
	if a == nil {
		log.Printf("store: stored airport %q no longer in table, unresolving", icao)
		return nil, pr.MatchUnresolved
	}
	return a, match
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
