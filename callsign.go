package polarrush

import (
	"fmt"
	"regexp"
	"strconv"
)

/* Callsigns, as seen in fr24 position feeds

1. Many airlines use the ICAO flight number: SAS935, CPA879
2. Many private aircraft use their registration: N839AL
3. Some airlines use a bare flight number: 4517
4. Various kinds of null identifiers: '', '00000000', '????????'

The airline code we want for colouring and grouping is the three-letter
ICAO prefix, and only the ICAO flight number form carries one.
*/

type CallsignType int
const(
	Undefined         CallsignType = iota
	JunkCallsign
	Registration
	IcaoFlightNumber
	BareFlightNumber
)

type Callsign struct {
	Raw           string

	CallsignType
	Registration  string
	IcaoPrefix    string
	ATCSuffix     string // should be one char, really
	Number        int64
}

func (c Callsign)String() string {
	switch c.CallsignType {
	case IcaoFlightNumber:
		return fmt.Sprintf("%s%d", c.IcaoPrefix, c.Number) // Strips leading zeroes and ATC suffix
	default:
		return c.Raw
	}
}

// AirlineCode returns the ICAO carrier prefix, or "" when the callsign doesn't carry one.
func (c Callsign)AirlineCode() string {
	if c.CallsignType == IcaoFlightNumber { return c.IcaoPrefix }
	return ""
}

func (c1 Callsign)Equal(c2 Callsign) bool {
	return c1.String() == c2.String()
}

func CallsignStringsEqual(c1,c2 string) bool {
	return NewCallsign(c1).Equal(NewCallsign(c2))
}

func NewCallsign(callsign string) (ret Callsign) {
	ret.Raw = callsign

	// Registration (e.g. N23ST). An N-number may only consist of one to five
	// characters, must start with a digit other than zero, and cannot contain I or O.
	reg := regexp.MustCompile("^(N[1-9][0-9A-HJ-NP-Z]{0,4})$").FindStringSubmatch(callsign)
	if reg != nil && len(reg)==2 {
		ret.Registration = callsign
		ret.CallsignType = Registration
		return
	}

	icao := regexp.MustCompile("^([A-Z]{3})([0-9]{1,4})([A-Z]?)$").FindStringSubmatch(callsign)
	if icao != nil && len(icao)==4 {
		ret.Number,_ = strconv.ParseInt(icao[2], 10, 64) // no errors here :)
		ret.IcaoPrefix = icao[1]
		ret.ATCSuffix = icao[3]
		ret.CallsignType = IcaoFlightNumber
		return
	}

	bare := regexp.MustCompile("^([0-9]{2,4})$").FindStringSubmatch(callsign)
	if bare != nil && len(bare)==2 {
		ret.Number,_ = strconv.ParseInt(bare[1], 10, 64)
		ret.CallsignType = BareFlightNumber
		return
	}

	ret.CallsignType = JunkCallsign
	return
}
