package collector

import (
	"time"
)

// LiveSet tracks which flights are still showing up in the polls. A flight
// that goes missing for enough consecutive polls is aged out, which is what
// triggers summary finalization upstream.

type LiveItem struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Missed    int // consecutive polls the flight has been absent from
}

type LiveSet map[string]*LiveItem

func (s LiveSet)String() string {
	str := "{"
	for k := range s {
		str += " " + k
	}
	return str + " }"
}

func (s LiveSet)Exists(flightID string) bool {
	_,exists := s[flightID]
	return exists
}

// MarkSeen records the flight as present this poll; returns true if it was new.
func (s LiveSet)MarkSeen(flightID string, now time.Time) (addedOk bool) {
	if item,exists := s[flightID]; exists {
		item.LastSeen = now
		item.Missed = 0
		return false
	}
	s[flightID] = &LiveItem{FirstSeen:now, LastSeen:now}
	return true
}

// AgeOut bumps the missed count of every flight not in seen, and returns
// (and removes) those that have now been absent for maxMissed polls.
func (s LiveSet)AgeOut(seen map[string]bool, maxMissed int) []string {
	gone := []string{}
	for id,item := range s {
		if seen[id] { continue }
		item.Missed++
		if item.Missed >= maxMissed {
			gone = append(gone, id)
			delete(s, id)
		}
	}
	return gone
}

// Drain empties the set, returning everything; used at end of run.
func (s LiveSet)Drain() []string {
	gone := []string{}
	for id := range s {
		gone = append(gone, id)
		delete(s, id)
	}
	return gone
}
