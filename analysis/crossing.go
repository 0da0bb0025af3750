// Package analysis decides which flights count as high-Arctic crossings:
// any flight with at least one recorded position at or above the threshold
// latitude (80N by default).
package analysis

import (
	"fmt"

	pr "github.com/arcticpaths/polarrush"
)

const KDefaultThresholdLat = 80.0

// Crossing is the result of scanning one flight's track.
type Crossing struct {
	FlightID     string
	ThresholdLat float64

	Crossed      bool
	MaxLatitude  float64

	// The points bounding the high-latitude segment: first and last points
	// (in time order) at or above the threshold. Only set when Crossed.
	Entry       *pr.Trackpoint
	Exit        *pr.Trackpoint

	// Estimated positions where the track actually hit the threshold,
	// interpolated between the boundary point and its below-threshold
	// neighbour. When the track starts or ends above the threshold there is
	// no such neighbour, and the estimate is the boundary point itself.
	EntryEstimate *pr.Trackpoint
	ExitEstimate  *pr.Trackpoint
}

func (cr Crossing)String() string {
	if !cr.Crossed {
		return fmt.Sprintf("%s: no crossing (maxlat %.2f)", cr.FlightID, cr.MaxLatitude)
	}
	return fmt.Sprintf("%s: crossed %.0fN (maxlat %.2f), %s - %s", cr.FlightID,
		cr.ThresholdLat, cr.MaxLatitude,
		cr.Entry.TimestampUTC.Format("15:04:05"), cr.Exit.TimestampUTC.Format("15:04:05"))
}

// AnalyzeCrossing is a pure scan over the track. Max and any-match are
// order-independent; the entry/exit points are computed over the track in
// timestamp order, so we sort a copy first.
func AnalyzeCrossing(t pr.Track, thresholdLat float64) Crossing {
	cr := Crossing{ThresholdLat:thresholdLat, MaxLatitude:-90.0}
	if len(t) == 0 { return cr }
	cr.FlightID = t[0].FlightID

	sorted := make(pr.Track, len(t))
	copy(sorted, t)
	sorted.Sort()

	entryIdx,exitIdx := -1,-1
	for i,tp := range sorted {
		if tp.Lat > cr.MaxLatitude {
			cr.MaxLatitude = tp.Lat
		}
		if tp.AboveLatitude(thresholdLat) {
			if !cr.Crossed {
				cr.Crossed = true
				cr.Entry = &sorted[i]
				entryIdx = i
			}
			cr.Exit = &sorted[i]
			exitIdx = i
		}
	}

	if cr.Crossed {
		cr.EntryEstimate = estimateAtThreshold(sorted, entryIdx, entryIdx-1, thresholdLat)
		cr.ExitEstimate = estimateAtThreshold(sorted, exitIdx, exitIdx+1, thresholdLat)
	}
	return cr
}

// estimateAtThreshold interpolates between the boundary point at i and its
// below-threshold neighbour at j, solving for the latitude. With no usable
// neighbour it falls back to the boundary point.
func estimateAtThreshold(t pr.Track, i,j int, thresholdLat float64) *pr.Trackpoint {
	if j < 0 || j >= len(t) || t[j].AboveLatitude(thresholdLat) {
		tp := t[i]
		return &tp
	}
	ratio := (thresholdLat - t[j].Lat) / (t[i].Lat - t[j].Lat)
	tp := t[j].InterpolateTo(t[i], ratio)
	return &tp
}

// Apply folds a crossing result into a summary, respecting the monotonic
// rules: the flag only ever flips to true, and MaxLatitude only climbs.
func (cr Crossing)Apply(fs *pr.FlightSummary) {
	if cr.Crossed {
		fs.MarkCrossed()
	}
	if cr.MaxLatitude > fs.MaxLatitude {
		fs.MaxLatitude = cr.MaxLatitude
	}
}

// MarkCrossings runs the scan for every summary that has a track, and
// returns the crossings keyed by flight ID.
func MarkCrossings(tracks map[string]pr.Track, summaries []pr.FlightSummary, thresholdLat float64) map[string]Crossing {
	ret := map[string]Crossing{}
	for i := range summaries {
		fs := &summaries[i]
		t,exists := tracks[fs.FlightID]
		if !exists { continue }
		cr := AnalyzeCrossing(t, thresholdLat)
		cr.Apply(fs)
		ret[fs.FlightID] = cr
	}
	return ret
}
