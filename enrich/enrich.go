// Package enrich joins finalized flight summaries against the airport
// reference table. Route metadata from the feed wins when the named airport
// is actually in the table; otherwise we fall back to the nearest airport to
// the track's first/last point, but only within a confidence radius. No
// confident match means no airport; we never invent one.
package enrich

import (
	"context"
	"log"

	pr "github.com/arcticpaths/polarrush"
	"github.com/arcticpaths/polarrush/airports"
	"github.com/arcticpaths/polarrush/fr24"
)

// KDefaultConfidenceRadiusKM bounds the nearest-airport fallback. An Arctic
// track endpoint can easily be a thousand KM from any runway; past this
// distance a "nearest" match is a guess, and we don't guess.
const KDefaultConfidenceRadiusKM = 150.0

// RouteSource resolves route metadata for flight IDs. The fr24 client
// satisfies this; tests use a canned map.
type RouteSource interface {
	LookupRoutes(ctx context.Context, flightIds []string) (map[string]fr24.RouteInfo, error)
}

type Enricher struct {
	Table  *airports.Table
	Routes  RouteSource // may be nil; then everything rides on the nearest fallback
	ConfidenceRadiusKM float64
}

func NewEnricher(table *airports.Table, routes RouteSource) *Enricher {
	return &Enricher{
		Table: table,
		Routes: routes,
		ConfidenceRadiusKM: KDefaultConfidenceRadiusKM,
	}
}

// {{{ e.EnrichAll

// EnrichAll is deterministic over its inputs: running it twice on the same
// summaries, tracks and table yields the same output.
func (e *Enricher)EnrichAll(ctx context.Context, summaries []pr.FlightSummary, tracks map[string]pr.Track) ([]pr.EnrichedFlight, error) {
	routes := map[string]fr24.RouteInfo{}
	if e.Routes != nil {
		ids := []string{}
		for _,fs := range summaries {
			ids = append(ids, fs.FlightID)
		}
		var err error
		if routes,err = e.Routes.LookupRoutes(ctx, ids); err != nil {
			return nil, err
		}
	}

	ret := []pr.EnrichedFlight{}
	for _,fs := range summaries {
		ret = append(ret, e.enrichOne(fs, routes[fs.FlightID], tracks[fs.FlightID]))
	}
	return ret, nil
}

func (e *Enricher)enrichOne(fs pr.FlightSummary, route fr24.RouteInfo, t pr.Track) pr.EnrichedFlight {
	ef := pr.EnrichedFlight{
		FlightSummary: fs,
		OriginMatch: pr.MatchUnresolved,
		DestinationMatch: pr.MatchUnresolved,
	}

	// A route record whose callsign disagrees with what we observed is
	// metadata for some other flight; distrust the whole record.
	if route.Callsign != "" && fs.Callsign != "" &&
		!pr.CallsignStringsEqual(route.Callsign, fs.Callsign) {
		log.Printf("enrich: %s route callsign %q disagrees with observed %q, ignoring route",
			fs.FlightID, route.Callsign, fs.Callsign)
		route = fr24.RouteInfo{}
	}

	var first,last *pr.Trackpoint
	if len(t) > 0 {
		first,last = &t[0],&t[len(t)-1]
	}

	ef.Origin, ef.OriginMatch = e.resolve(route.OrigIcao, first)
	ef.Destination, ef.DestinationMatch = e.resolve(route.DestIcao, last)

	if ef.OriginMatch == pr.MatchUnresolved && ef.DestinationMatch == pr.MatchUnresolved {
		log.Printf("enrich: %s fully unresolved (route=%q/%q)", fs.FlightID,
			route.OrigIcao, route.DestIcao)
	}
	return ef
}

// }}}
// {{{ e.resolve

// resolve applies the matching policy for one end of a flight.
func (e *Enricher)resolve(icao string, endpoint *pr.Trackpoint) (*airports.Airport, pr.MatchKind) {
	if icao != "" {
		if a := e.Table.ByICAO(icao); a != nil {
			return a, pr.MatchRoute
		}
		// The feed named an airport our table doesn't know. That's a table
		// gap, not a licence to guess a different airport.
		log.Printf("enrich: airport %q not in reference table, leaving unresolved", icao)
		return nil, pr.MatchUnresolved
	}

	if endpoint == nil {
		return nil, pr.MatchUnresolved
	}
	a,distKM := e.Table.Nearest(endpoint.Latlong)
	if a == nil || distKM > e.ConfidenceRadiusKM {
		return nil, pr.MatchUnresolved
	}
	return a, pr.MatchNearest
}

// }}}
