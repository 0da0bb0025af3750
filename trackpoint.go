package polarrush

import (
	"fmt"
	"time"

	"github.com/skypies/geo"
)

// Trackpoint is a data point that locates an aircraft in space and time.
type Trackpoint struct {
	FlightID     string    // The fr24 hex ID of the flight this point belongs to
	TimestampUTC time.Time // Always in UTC, to make life SIMPLE

	geo.Latlong            // Embedded type, so we can call all the geo stuff directly on trackpoints

	Altitude     float64   // In feet
	GroundSpeed  float64   // In knots
	Heading      float64   // [0.0, 360.0) degrees. Direction plane is pointing in.
	Squawk       string    // Generally, a string of four digits.
}

func (tp Trackpoint)String() string {
	return fmt.Sprintf("[%s] %s %s %.0fft, %.0fkts, %.0fdeg", tp.FlightID,
		tp.TimestampUTC.Format("2006.01.02 15:04:05"), tp.Latlong,
		tp.Altitude, tp.GroundSpeed, tp.Heading)
}

// AboveLatitude is the high-Arctic test; just the latitude, nothing clever.
func (tp Trackpoint)AboveLatitude(lat float64) bool {
	return tp.Lat >= lat
}

func (from Trackpoint)InterpolateTo(to Trackpoint, ratio float64) Trackpoint {
	return Trackpoint{
		FlightID: from.FlightID,
		TimestampUTC: interpolateTime(from.TimestampUTC, to.TimestampUTC, ratio),
		Latlong: from.Latlong.InterpolateTo(to.Latlong, ratio),
		Altitude: interpolateFloat64(from.Altitude, to.Altitude, ratio),
		GroundSpeed: interpolateFloat64(from.GroundSpeed, to.GroundSpeed, ratio),
		Heading: geo.InterpolateHeading(from.Heading, to.Heading, ratio),
	}
}

func interpolateFloat64(from, to, ratio float64) float64 {
	return from + (to-from)*ratio
}

func interpolateTime(from, to time.Time, ratio float64) time.Time {
	d1 := to.Sub(from)
	nanosToAdd := ratio * float64(d1.Nanoseconds())
	d2 := time.Nanosecond * time.Duration(nanosToAdd)
	d3 := time.Second * time.Duration(d2.Seconds()) // Round down to second precision
	return from.Add(d3)
}
