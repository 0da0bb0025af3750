package render

// go test -v github.com/arcticpaths/polarrush/render

import (
	"math"
	"testing"

	pr "github.com/arcticpaths/polarrush"
)

// Projection only; no Fpdf needed for UV.
func testGrid() PolarGrid {
	return PolarGrid{
		CenterU: 100.0,
		CenterV: 100.0,
		Radius: 90.0,
		MinLat: 70.0,
	}
}

func TestPoleProjectsToCenter(t *testing.T) {
	pg := testGrid()
	u,v,oob := pg.UV(90.0, 123.0) // longitude is irrelevant at the pole
	if oob {
		t.Errorf("pole flagged out of bounds")
	}
	if math.Abs(u-100.0) > 1e-9 || math.Abs(v-100.0) > 1e-9 {
		t.Errorf("pole not at center: (%.4f,%.4f)", u, v)
	}
}

func TestEdgeLatitudeProjectsToRim(t *testing.T) {
	pg := testGrid()
	u,v,oob := pg.UV(70.0, 0.0) // min-lat, on the central meridian: straight up
	if oob {
		t.Errorf("edge latitude flagged out of bounds")
	}
	if math.Abs(u-100.0) > 1e-9 || math.Abs(v-10.0) > 1e-9 {
		t.Errorf("expected (100,10), got (%.4f,%.4f)", u, v)
	}
}

func TestRadiusScalesWithLatitude(t *testing.T) {
	pg := testGrid()

	// 80N is halfway between 90 and 70, so half the disc radius out.
	u,v,_ := pg.UV(80.0, 90.0) // 90E: due right of center
	if math.Abs(u-145.0) > 1e-9 || math.Abs(v-100.0) > 1e-9 {
		t.Errorf("expected (145,100), got (%.4f,%.4f)", u, v)
	}

	_,_,oob := pg.UV(65.0, 0.0)
	if !oob {
		t.Errorf("65N is below the map edge; should be out of bounds")
	}
}

func TestAirlineColorsAreDeterministic(t *testing.T) {
	flights := []pr.EnrichedFlight{
		{FlightSummary: pr.FlightSummary{FlightID:"a", AirlineCode:"SAS"}},
		{FlightSummary: pr.FlightSummary{FlightID:"b", AirlineCode:"FIN"}},
		{FlightSummary: pr.FlightSummary{FlightID:"c", AirlineCode:"SAS"}},
		{FlightSummary: pr.FlightSummary{FlightID:"d"}}, // no airline
	}
	reversed := []pr.EnrichedFlight{flights[3], flights[2], flights[1], flights[0]}

	c1 := assignAirlineColors(flights)
	c2 := assignAirlineColors(reversed)

	for code := range c1 {
		if len(c1[code]) != 3 {
			t.Fatalf("bad rgb for %q", code)
		}
		for i := range c1[code] {
			if c1[code][i] != c2[code][i] {
				t.Errorf("color for %q depends on input order", code)
			}
		}
	}
	if _,exists := c1[""]; !exists {
		t.Errorf("missing fallback color for unknown airlines")
	}
}
