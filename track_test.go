package polarrush

// go test -v github.com/arcticpaths/polarrush

import (
	"testing"
	"time"

	"github.com/skypies/geo"
)

func tpAt(id string, secs int, lat, long float64) Trackpoint {
	return Trackpoint{
		FlightID: id,
		TimestampUTC: time.Date(2025,3,1, 12,0,secs, 0, time.UTC),
		Latlong: geo.Latlong{Lat:lat, Long:long},
	}
}

func TestTrackMaxLatitude(t *testing.T) {
	track := Track{
		tpAt("38a1b2c", 0, 75.0, 10.0),
		tpAt("38a1b2c", 10, 81.0, 15.0),
		tpAt("38a1b2c", 20, 79.0, 20.0),
	}

	if got := track.MaxLatitude(); got != 81.0 {
		t.Errorf("MaxLatitude: expected 81.0, got %.2f", got)
	}
	if !track.HasPointAboveLatitude(80.0) {
		t.Errorf("HasPointAboveLatitude(80): expected true")
	}
	if track.HasPointAboveLatitude(81.5) {
		t.Errorf("HasPointAboveLatitude(81.5): expected false")
	}
}

func TestTrackSortAndMerge(t *testing.T) {
	t1 := Track{
		tpAt("38a1b2c", 20, 79.0, 20.0),
		tpAt("38a1b2c", 0, 75.0, 10.0),
	}
	t2 := Track{
		tpAt("38a1b2c", 10, 81.0, 15.0),
	}

	t1.Merge(&t2)
	if len(t1) != 3 {
		t.Fatalf("Merge: expected 3 points, got %d", len(t1))
	}
	for i := 1; i < len(t1); i++ {
		if t1[i].TimestampUTC.Before(t1[i-1].TimestampUTC) {
			t.Errorf("Merge: points out of order at %d", i)
		}
	}
	if t1.Start() != tpAt("38a1b2c", 0, 75.0, 10.0).TimestampUTC {
		t.Errorf("Start: wrong time %s", t1.Start())
	}
	if t1.Duration() != 20*time.Second {
		t.Errorf("Duration: expected 20s, got %s", t1.Duration())
	}
}

func TestTrimToTimes(t *testing.T) {
	track := Track{
		tpAt("38a1b2c", 0, 75.0, 10.0),
		tpAt("38a1b2c", 10, 81.0, 15.0),
		tpAt("38a1b2c", 20, 79.0, 20.0),
	}

	sub := track.TrimToTimes(track[1].TimestampUTC, track[2].TimestampUTC)
	if len(*sub) != 2 {
		t.Errorf("TrimToTimes: expected 2 points, got %d", len(*sub))
	}
}
