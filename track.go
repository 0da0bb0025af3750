package polarrush

import (
	"fmt"
	"sort"
	"time"
)

// A Track is a slice of Trackpoints for one flight. They are ordered in time, beginning to end.
type Track []Trackpoint

type TrackByTimestampAscending Track
func (a TrackByTimestampAscending) Len() int           { return len(a) }
func (a TrackByTimestampAscending) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a TrackByTimestampAscending) Less(i, j int) bool {
	return a[i].TimestampUTC.Before(a[j].TimestampUTC)
}

func (t Track)Start() time.Time { return t[0].TimestampUTC }
func (t Track)End() time.Time { return t[len(t)-1].TimestampUTC }
func (t Track)Duration() time.Duration { return t.End().Sub(t.Start()) }

func (t Track)Sort() {
	sort.Sort(TrackByTimestampAscending(t))
}

// MaxLatitude is order-independent; it doesn't care whether the track is sorted.
func (t Track)MaxLatitude() float64 {
	max := -90.0
	for _,tp := range t {
		if tp.Lat > max { max = tp.Lat }
	}
	return max
}

// HasPointAboveLatitude reports whether any point sits at or above lat.
func (t Track)HasPointAboveLatitude(lat float64) bool {
	for _,tp := range t {
		if tp.AboveLatitude(lat) { return true }
	}
	return false
}

func (t Track)String() string {
	if len(t) == 0 { return "Track: 0 points" }
	str := fmt.Sprintf("Track: %d points, start=%s", len(t),
		t[0].TimestampUTC.Format("2006.01.02 15:04:05"))
	if len(t) > 1 {
		s,e := t[0],t[len(t)-1]
		str += fmt.Sprintf(", %s, %.1fKM (maxlat %.2f)",
			e.TimestampUTC.Sub(s.TimestampUTC), s.Dist(e.Latlong), t.MaxLatitude())
	}
	return str
}

func (t1 *Track)Merge(t2 *Track) {
	for _,tp := range *t2 {
		*t1 = append(*t1, tp)
	}
	sort.Sort(TrackByTimestampAscending(*t1))
}

// Returns a (possibly empty) subtrack of points within [s,e] (inclusive).
func (t *Track)TrimToTimes(s,e time.Time) *Track {
	ret := Track{}
	for _,tp := range *t {
		if !tp.TimestampUTC.Before(s) && !tp.TimestampUTC.After(e) {
			ret = append(ret, tp)
		}
	}
	return &ret
}
