// Package fr24 is a client for the Flightradar24 API's "light" endpoints:
// live and historic flight positions inside a bounding box, and batched
// flight summaries. Parsing is kept separate from fetching, so the parsers
// can be fed canned JSON in tests.
package fr24

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skypies/geo"

	pr "github.com/arcticpaths/polarrush"
)

const(
	kDefaultHost       = "fr24api.flightradar24.com"
	kURLLivePositions  = "/api/live/flight-positions/light"
	kURLHistoricPositions = "/api/historic/flight-positions/light"
	kURLFlightSummary  = "/api/flight-summary/light"

	// How many flight IDs we pack into one flight-summary call
	KSummaryBatchSize = 15
)

var ErrNoToken = fmt.Errorf("fr24: no API token")

type Fr24 struct {
	Client *http.Client
	Token   string
	host    string

	// Retry policy for transient failures (connection errors, 429s, 5xx).
	MaxRetries  int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

func NewFr24(c *http.Client, token string) (*Fr24, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if c == nil {
		c = &http.Client{Timeout: 30*time.Second}
	}
	db := Fr24{
		Client: c,
		Token: token,
		host: kDefaultHost,
		MaxRetries: 5,
		BaseBackoff: 10*time.Second,
		MaxBackoff: 60*time.Second,
	}
	return &db, nil
}

// {{{ Get*Url

// BoundsString renders a box the way fr24 wants it: north,south,west,east.
// Shortest representation that round-trips, so a box like south=80.25 isn't
// quietly widened by rounding.
func BoundsString(box geo.LatlongBox) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return f(box.NE.Lat) + "," + f(box.SW.Lat) + "," + f(box.SW.Long) + "," + f(box.NE.Long)
}

func (fr *Fr24)GetLivePositionsUrl(bounds string) string {
	v := url.Values{}
	v.Set("bounds", bounds)
	v.Set("limit", "1000")
	return "https://" + fr.host + kURLLivePositions + "?" + v.Encode()
}

func (fr *Fr24)GetHistoricPositionsUrl(bounds string, ts time.Time) string {
	v := url.Values{}
	v.Set("bounds", bounds)
	v.Set("timestamp", fmt.Sprintf("%d", ts.Unix()))
	v.Set("limit", "1000")
	return "https://" + fr.host + kURLHistoricPositions + "?" + v.Encode()
}

func (fr *Fr24)GetFlightSummaryUrl(flightIds []string) string {
	v := url.Values{}
	v.Set("flight_ids", strings.Join(flightIds, ","))
	return "https://" + fr.host + kURLFlightSummary + "?" + v.Encode()
}

// }}}
// {{{ fr.Url2Body

// Url2Body fetches a URL, retrying transient failures with exponential
// backoff plus jitter. 4xx responses other than 429 are permanent, and fail
// immediately.
func (fr *Fr24)Url2Body(ctx context.Context, urlToCall string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= fr.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := fr.backoff(ctx, attempt); err != nil {
				return nil, err
			}
		}

		body,retryable,err := fr.url2bodyOnce(ctx, urlToCall)
		if err == nil {
			return body, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("fr24: %d retries exhausted: %w", fr.MaxRetries, lastErr)
}

func (fr *Fr24)url2bodyOnce(ctx context.Context, urlToCall string) (body []byte, retryable bool, err error) {
	req,err := http.NewRequestWithContext(ctx, "GET", urlToCall, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Authorization", "Bearer "+fr.Token)

	resp,err := fr.Client.Do(req)
	if err != nil {
		return nil, true, err // connection errors are worth a retry
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body,err := io.ReadAll(resp.Body)
		return body, false, err
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("fr24: rate limited (429)")
	case resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("fr24: bad status: %v", resp.Status)
	default:
		return nil, false, fmt.Errorf("fr24: bad status: %v", resp.Status)
	}
}

func (fr *Fr24)backoff(ctx context.Context, attempt int) error {
	d := fr.BaseBackoff
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= fr.MaxBackoff { break }
	}
	if d > fr.MaxBackoff { d = fr.MaxBackoff }
	d += time.Duration(rand.Int63n(1 + d.Nanoseconds()/10)) // jitter, up to 10%

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// }}}

// {{{ ParsePositions

func ParsePositions(body []byte) ([]pr.FlightSnapshot, error) {
	resp := PositionsResponse{}
	if err := json.Unmarshal(body, &resp); err != nil { return nil, err }

	ret := []pr.FlightSnapshot{}
	for _,e := range resp.Data {
		if e.Fr24Id == "" { continue } // nothing to key the flight on; skip

		t,err := time.Parse(time.RFC3339, e.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("fr24: bad timestamp %q for %s: %w", e.Timestamp, e.Fr24Id, err)
		}

		ret = append(ret, pr.FlightSnapshot{
			Trackpoint: pr.Trackpoint{
				FlightID: e.Fr24Id,
				TimestampUTC: t.UTC(),
				Latlong: geo.Latlong{Lat:e.Lat, Long:e.Lon},
				Altitude: e.Alt,
				GroundSpeed: e.Gspeed,
				Heading: e.Track,
				Squawk: e.Squawk,
			},
			Callsign: e.Callsign,
		})
	}
	return ret, nil
}

// }}}
// {{{ ParseSummaries

// RouteInfo is what the flight-summary endpoint knows about a flight's route.
type RouteInfo struct {
	Fr24Id   string
	Callsign string
	OrigIcao string
	DestIcao string
}

func ParseSummaries(body []byte) (map[string]RouteInfo, error) {
	resp := SummaryResponse{}
	if err := json.Unmarshal(body, &resp); err != nil { return nil, err }

	ret := map[string]RouteInfo{}
	for _,e := range resp.Data {
		if e.Fr24Id == "" { continue }
		ret[e.Fr24Id] = RouteInfo{
			Fr24Id: e.Fr24Id,
			Callsign: e.Callsign,
			OrigIcao: e.OrigIcao,
			DestIcao: e.DestIcao,
		}
	}
	return ret, nil
}

// }}}

// {{{ fr.LookupLivePositions

// LookupLivePositions returns a snapshot of what's currently in the box.
func (fr *Fr24)LookupLivePositions(ctx context.Context, box geo.LatlongBox) ([]pr.FlightSnapshot, error) {
	body,err := fr.Url2Body(ctx, fr.GetLivePositionsUrl(BoundsString(box)))
	if err != nil {
		return nil, err
	}
	return ParsePositions(body)
}

// }}}
// {{{ fr.LookupHistoricPositions

// LookupHistoricPositions is the same thing, but for a point in the past.
func (fr *Fr24)LookupHistoricPositions(ctx context.Context, box geo.LatlongBox, ts time.Time) ([]pr.FlightSnapshot, error) {
	body,err := fr.Url2Body(ctx, fr.GetHistoricPositionsUrl(BoundsString(box), ts))
	if err != nil {
		return nil, err
	}
	return ParsePositions(body)
}

// }}}
// {{{ fr.LookupRoutes

// LookupRoutes resolves route metadata for a set of flight IDs, batching
// KSummaryBatchSize IDs into each API call.
func (fr *Fr24)LookupRoutes(ctx context.Context, flightIds []string) (map[string]RouteInfo, error) {
	ret := map[string]RouteInfo{}

	for start := 0; start < len(flightIds); start += KSummaryBatchSize {
		end := start + KSummaryBatchSize
		if end > len(flightIds) { end = len(flightIds) }

		body,err := fr.Url2Body(ctx, fr.GetFlightSummaryUrl(flightIds[start:end]))
		if err != nil {
			return ret, err
		}
		routes,err := ParseSummaries(body)
		if err != nil {
			return ret, err
		}
		for k,v := range routes {
			ret[k] = v
		}
	}

	return ret, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
