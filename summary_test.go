package polarrush

// go test -v github.com/arcticpaths/polarrush

import (
	"testing"
)

// Max-latitude must be non-decreasing however the points arrive.
func TestSummaryMaxLatitudeMonotonic(t *testing.T) {
	lats := []float64{75.0, 81.0, 79.0, 80.5, 60.0}

	fs := NewFlightSummary("run1", tpAt("38a1b2c", 0, lats[0], 0.0), "SAS935")
	prev := fs.MaxLatitude
	for i,lat := range lats[1:] {
		fs.Update(tpAt("38a1b2c", (i+1)*10, lat, 0.0))
		if fs.MaxLatitude < prev {
			t.Errorf("MaxLatitude decreased: %.2f -> %.2f after lat %.2f", prev, fs.MaxLatitude, lat)
		}
		prev = fs.MaxLatitude
	}

	if fs.MaxLatitude != 81.0 {
		t.Errorf("expected final MaxLatitude 81.0, got %.2f", fs.MaxLatitude)
	}
	if fs.PointCount != 5 {
		t.Errorf("expected 5 points, got %d", fs.PointCount)
	}
}

func TestSummarySeenTimesWiden(t *testing.T) {
	// Points out of timestamp order; FirstSeen/LastSeen should still bracket them.
	fs := NewFlightSummary("run1", tpAt("38a1b2c", 10, 80.0, 0.0), "SAS935")
	fs.Update(tpAt("38a1b2c", 30, 80.0, 0.0))
	fs.Update(tpAt("38a1b2c", 0, 80.0, 0.0))

	if fs.FirstSeen != tpAt("38a1b2c", 0, 0, 0).TimestampUTC {
		t.Errorf("FirstSeen wrong: %s", fs.FirstSeen)
	}
	if fs.LastSeen != tpAt("38a1b2c", 30, 0, 0).TimestampUTC {
		t.Errorf("LastSeen wrong: %s", fs.LastSeen)
	}
}

func TestSummaryIgnoresForeignPoints(t *testing.T) {
	fs := NewFlightSummary("run1", tpAt("38a1b2c", 0, 75.0, 0.0), "SAS935")
	fs.Update(tpAt("deadbee", 10, 89.0, 0.0))

	if fs.PointCount != 1 || fs.MaxLatitude != 75.0 {
		t.Errorf("foreign point leaked in: count=%d maxlat=%.2f", fs.PointCount, fs.MaxLatitude)
	}
}

func TestSummaryAirlineCode(t *testing.T) {
	fs := NewFlightSummary("run1", tpAt("38a1b2c", 0, 75.0, 0.0), "SAS935")
	if fs.AirlineCode != "SAS" {
		t.Errorf("expected airline SAS, got %q", fs.AirlineCode)
	}

	fs2 := NewFlightSummary("run1", tpAt("38a1b2d", 0, 75.0, 0.0), "N761QA")
	if fs2.AirlineCode != "" {
		t.Errorf("expected no airline for a registration, got %q", fs2.AirlineCode)
	}
}
