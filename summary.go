package polarrush

import (
	"fmt"
	"time"

	"github.com/arcticpaths/polarrush/airports"
)

// FlightSummary is the aggregated record for one complete flight's observed
// track. It is created when the flight is first seen, updated as points
// arrive, and finalized once the flight drops out of the live polls.
//
// MaxLatitude and CrossedThreshold are monotonic over the point set: the
// former only ever increases, and the latter only ever flips to true.
type FlightSummary struct {
	FlightID         string // fr24 hex ID
	Callsign         string
	AirlineCode      string // Three-letter ICAO prefix, when the callsign carries one
	RunID            string // Which collection run observed this flight

	FirstSeen        time.Time
	LastSeen         time.Time
	PointCount       int

	MaxLatitude      float64
	CrossedThreshold bool
	Finalized        bool
}

func NewFlightSummary(runID string, tp Trackpoint, callsign string) *FlightSummary {
	fs := FlightSummary{
		FlightID: tp.FlightID,
		Callsign: callsign,
		AirlineCode: NewCallsign(callsign).AirlineCode(),
		RunID: runID,
		FirstSeen: tp.TimestampUTC,
		LastSeen: tp.TimestampUTC,
		MaxLatitude: -90.0,
	}
	fs.Update(tp)
	return &fs
}

// Update folds one new trackpoint into the summary. Points can arrive in any
// order; the seen-times widen and MaxLatitude only ratchets upwards.
func (fs *FlightSummary)Update(tp Trackpoint) {
	if tp.FlightID != fs.FlightID {
		return // not ours; belt and braces
	}
	fs.PointCount++
	if fs.FirstSeen.IsZero() || tp.TimestampUTC.Before(fs.FirstSeen) {
		fs.FirstSeen = tp.TimestampUTC
	}
	if tp.TimestampUTC.After(fs.LastSeen) {
		fs.LastSeen = tp.TimestampUTC
	}
	if tp.Lat > fs.MaxLatitude {
		fs.MaxLatitude = tp.Lat
	}
}

// MarkCrossed sets the threshold flag; there is deliberately no way to clear it.
func (fs *FlightSummary)MarkCrossed() {
	fs.CrossedThreshold = true
}

func (fs *FlightSummary)Finalize() {
	fs.Finalized = true
}

func (fs FlightSummary)String() string {
	return fmt.Sprintf("%s c:%s %dpts [%s - %s] maxlat=%.2f crossed=%v",
		fs.FlightID, fs.Callsign, fs.PointCount,
		fs.FirstSeen.Format("15:04:05"), fs.LastSeen.Format("15:04:05"),
		fs.MaxLatitude, fs.CrossedThreshold)
}

// MatchKind says how (or whether) an airport got attached to a flight.
type MatchKind string
const(
	MatchRoute      MatchKind = "route"      // fr24 flight-summary metadata named the airport
	MatchNearest    MatchKind = "nearest"    // nearest airport to a track endpoint, within the confidence radius
	MatchUnresolved MatchKind = "unresolved" // no confident match; airport left nil
)

// EnrichedFlight is a FlightSummary joined against the airport table.
// A nil airport means unresolved; we never fabricate a guess.
type EnrichedFlight struct {
	FlightSummary

	Origin       *airports.Airport
	Destination  *airports.Airport
	OriginMatch      MatchKind
	DestinationMatch MatchKind
}

func (ef EnrichedFlight)String() string {
	orig,dest := "----","----"
	if ef.Origin != nil { orig = ef.Origin.ICAO }
	if ef.Destination != nil { dest = ef.Destination.ICAO }
	return fmt.Sprintf("%s [%s-%s]", ef.FlightSummary, orig, dest)
}
