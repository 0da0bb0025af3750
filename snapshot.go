package polarrush

import "fmt"

// FlightSnapshot is one aircraft as reported by a single live poll: a
// position sample plus whatever identity the feed gave us.
type FlightSnapshot struct {
	Trackpoint          // Embedded; FlightID lives in here
	Callsign     string // Raw, as found in the feed
}

func (fs FlightSnapshot)String() string {
	return fmt.Sprintf("{%s} %s", fs.Callsign, fs.Trackpoint)
}
