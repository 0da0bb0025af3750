package fr24

// Wire types for the fr24api.flightradar24.com "light" endpoints.

type PositionsResponse struct {
	Data []PositionEntry `json:"data"`
}

type PositionEntry struct {
	Fr24Id    string  `json:"fr24_id"`
	Hex       string  `json:"hex"`
	Callsign  string  `json:"callsign"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Track     float64 `json:"track"`   // heading, degrees
	Alt       float64 `json:"alt"`     // feet
	Gspeed    float64 `json:"gspeed"`  // knots
	Vspeed    float64 `json:"vspeed"`  // feet/min
	Squawk    string  `json:"squawk"`
	Timestamp string  `json:"timestamp"` // RFC3339
	Source    string  `json:"source"`
}

type SummaryResponse struct {
	Data []SummaryEntry `json:"data"`
}

type SummaryEntry struct {
	Fr24Id          string `json:"fr24_id"`
	Flight          string `json:"flight"`
	Callsign        string `json:"callsign"`
	OperatingAs     string `json:"operating_as"`
	PaintedAs       string `json:"painted_as"`
	OrigIcao        string `json:"orig_icao"`
	DestIcao        string `json:"dest_icao"`
	DatetimeTakeoff string `json:"datetime_takeoff"`
	DatetimeLanded  string `json:"datetime_landed"`
}
