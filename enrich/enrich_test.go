package enrich

// go test -v github.com/arcticpaths/polarrush/enrich

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skypies/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pr "github.com/arcticpaths/polarrush"
	"github.com/arcticpaths/polarrush/airports"
	"github.com/arcticpaths/polarrush/fr24"
)

var tableCSV = `icao_code,iata_code,name,latitude_deg,longitude_deg,iso_country
ENSB,LYR,"Svalbard Airport, Longyear",78.2461,15.4656,NO
ENGM,OSL,Oslo Gardermoen Airport,60.1939,11.1004,NO
KSFO,SFO,San Francisco International,37.6188,-122.3750,US`

func testTable(t *testing.T) *airports.Table {
	table,err := airports.LoadTable(strings.NewReader(tableCSV))
	require.NoError(t, err)
	return table
}

// cannedRoutes satisfies RouteSource without any network.
type cannedRoutes map[string]fr24.RouteInfo

func (c cannedRoutes)LookupRoutes(ctx context.Context, ids []string) (map[string]fr24.RouteInfo, error) {
	ret := map[string]fr24.RouteInfo{}
	for _,id := range ids {
		if r,exists := c[id]; exists {
			ret[id] = r
		}
	}
	return ret, nil
}

func summaryFor(id string) pr.FlightSummary {
	return pr.FlightSummary{
		FlightID: id,
		Callsign: "SAS935",
		FirstSeen: time.Date(2025,3,1, 12,0,0, 0, time.UTC),
		LastSeen: time.Date(2025,3,1, 13,0,0, 0, time.UTC),
		Finalized: true,
	}
}

func trackFromTo(id string, fromLat, fromLong, toLat, toLong float64) pr.Track {
	return pr.Track{
		{FlightID:id, TimestampUTC:time.Date(2025,3,1, 12,0,0, 0, time.UTC),
			Latlong:geo.Latlong{Lat:fromLat, Long:fromLong}},
		{FlightID:id, TimestampUTC:time.Date(2025,3,1, 13,0,0, 0, time.UTC),
			Latlong:geo.Latlong{Lat:toLat, Long:toLong}},
	}
}

func TestRouteMetadataWins(t *testing.T) {
	e := NewEnricher(testTable(t), cannedRoutes{
		"aaa": {Fr24Id:"aaa", OrigIcao:"ENGM", DestIcao:"KSFO"},
	})

	out,err := e.EnrichAll(context.Background(),
		[]pr.FlightSummary{summaryFor("aaa")},
		map[string]pr.Track{"aaa": trackFromTo("aaa", 60.2, 11.1, 37.6, -122.4)})
	require.NoError(t, err)
	require.Len(t, out, 1)

	ef := out[0]
	require.NotNil(t, ef.Origin)
	assert.Equal(t, "ENGM", ef.Origin.ICAO)
	assert.Equal(t, pr.MatchRoute, ef.OriginMatch)
	require.NotNil(t, ef.Destination)
	assert.Equal(t, "KSFO", ef.Destination.ICAO)
	assert.Equal(t, pr.MatchRoute, ef.DestinationMatch)
}

// A route code our table doesn't know must yield unresolved, not a panic,
// and not some other nearby airport.
func TestUnknownCodeStaysUnresolved(t *testing.T) {
	e := NewEnricher(testTable(t), cannedRoutes{
		"aaa": {Fr24Id:"aaa", OrigIcao:"ZZZZ", DestIcao:""},
	})

	out,err := e.EnrichAll(context.Background(),
		[]pr.FlightSummary{summaryFor("aaa")},
		map[string]pr.Track{"aaa": trackFromTo("aaa", 78.25, 15.45, 78.25, 15.45)})
	require.NoError(t, err)

	ef := out[0]
	assert.Nil(t, ef.Origin)
	assert.Equal(t, pr.MatchUnresolved, ef.OriginMatch)
}

func TestNearestFallbackRespectsRadius(t *testing.T) {
	e := NewEnricher(testTable(t), nil) // no route source at all

	// First point sits on Svalbard's doorstep; last point is mid-ocean.
	out,err := e.EnrichAll(context.Background(),
		[]pr.FlightSummary{summaryFor("aaa")},
		map[string]pr.Track{"aaa": trackFromTo("aaa", 78.2, 15.5, 85.0, -40.0)})
	require.NoError(t, err)

	ef := out[0]
	require.NotNil(t, ef.Origin)
	assert.Equal(t, "ENSB", ef.Origin.ICAO)
	assert.Equal(t, pr.MatchNearest, ef.OriginMatch)

	assert.Nil(t, ef.Destination) // nothing within the confidence radius
	assert.Equal(t, pr.MatchUnresolved, ef.DestinationMatch)
}

// Route metadata carrying the wrong callsign is a record for some other
// flight; the enricher must drop it and fall back to the nearest match.
func TestMismatchedRouteCallsignIsIgnored(t *testing.T) {
	e := NewEnricher(testTable(t), cannedRoutes{
		"aaa": {Fr24Id:"aaa", Callsign:"DLH440", OrigIcao:"ENGM", DestIcao:"KSFO"},
	})

	out,err := e.EnrichAll(context.Background(),
		[]pr.FlightSummary{summaryFor("aaa")}, // observed callsign SAS935
		map[string]pr.Track{"aaa": trackFromTo("aaa", 78.2, 15.5, 85.0, -40.0)})
	require.NoError(t, err)

	ef := out[0]
	require.NotNil(t, ef.Origin)
	assert.Equal(t, "ENSB", ef.Origin.ICAO) // nearest, not the distrusted route
	assert.Equal(t, pr.MatchNearest, ef.OriginMatch)
	assert.Nil(t, ef.Destination)
	assert.Equal(t, pr.MatchUnresolved, ef.DestinationMatch)
}

// Callsign comparison is normalized: SAS0935 and SAS935 are the same flight.
func TestRouteCallsignComparisonNormalizes(t *testing.T) {
	e := NewEnricher(testTable(t), cannedRoutes{
		"aaa": {Fr24Id:"aaa", Callsign:"SAS0935", OrigIcao:"ENGM"},
	})

	out,err := e.EnrichAll(context.Background(),
		[]pr.FlightSummary{summaryFor("aaa")},
		map[string]pr.Track{"aaa": trackFromTo("aaa", 60.2, 11.1, 85.0, -40.0)})
	require.NoError(t, err)

	require.NotNil(t, out[0].Origin)
	assert.Equal(t, "ENGM", out[0].Origin.ICAO)
	assert.Equal(t, pr.MatchRoute, out[0].OriginMatch)
}

func TestNoTrackMeansUnresolved(t *testing.T) {
	e := NewEnricher(testTable(t), nil)

	out,err := e.EnrichAll(context.Background(),
		[]pr.FlightSummary{summaryFor("aaa")}, map[string]pr.Track{})
	require.NoError(t, err)

	assert.Nil(t, out[0].Origin)
	assert.Nil(t, out[0].Destination)
}

func TestEnrichmentIsIdempotent(t *testing.T) {
	e := NewEnricher(testTable(t), cannedRoutes{
		"aaa": {Fr24Id:"aaa", OrigIcao:"ENGM"},
	})

	summaries := []pr.FlightSummary{summaryFor("aaa"), summaryFor("bbb")}
	tracks := map[string]pr.Track{
		"aaa": trackFromTo("aaa", 60.2, 11.1, 85.0, -40.0),
		"bbb": trackFromTo("bbb", 78.2, 15.5, 85.0, 0.0),
	}

	first,err := e.EnrichAll(context.Background(), summaries, tracks)
	require.NoError(t, err)
	second,err := e.EnrichAll(context.Background(), summaries, tracks)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
