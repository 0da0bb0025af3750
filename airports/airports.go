// Package airports loads the static world-airports reference table, and
// answers code and nearest-neighbour lookups against it.
package airports

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/skypies/geo"
)

// Airport is one row of the reference table. Read-only for the process lifetime.
type Airport struct {
	ICAO        string
	IATA        string
	Name        string
	geo.Latlong           // Embedded, so distance calls work directly on airports
	Country     string
}

func (a Airport)String() string {
	return fmt.Sprintf("%s/%s %q %s %s", a.ICAO, a.IATA, a.Name, a.Latlong, a.Country)
}

type Table struct {
	byICAO map[string]*Airport
	byIATA map[string]*Airport
	all    []Airport
}

func (t *Table)Len() int { return len(t.all) }

func (t *Table)ByICAO(code string) *Airport {
	return t.byICAO[code]
}
func (t *Table)ByIATA(code string) *Airport {
	return t.byIATA[code]
}

// Nearest returns the closest airport to pos, and the distance to it in KM.
// Returns nil only for an empty table.
func (t *Table)Nearest(pos geo.Latlong) (*Airport, float64) {
	var best *Airport
	bestKM := 0.0
	for i,a := range t.all {
		distKM := pos.DistKM(a.Latlong)
		if best == nil || distKM < bestKM {
			best,bestKM = &t.all[i],distKM
		}
	}
	return best, bestKM
}

// {{{ LoadTable

/* The table is CSV with a header row; the headers vary between dumps of the
world-airports data, so we key fields by header name rather than position.
The columns we need:

  icao_code,iata_code,name,latitude_deg,longitude_deg,iso_country

Rows missing an ICAO code or a parseable position are logged and skipped;
a bad row never aborts the load.
*/

func LoadTable(r io.Reader) (*Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1 // some dumps have ragged rows; we validate per-field below

	headers,err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("airports: reading header: %w", err)
	}
	col := map[string]int{}
	for i,h := range headers {
		col[h] = i
	}
	for _,required := range []string{"icao_code","latitude_deg","longitude_deg"} {
		if _,exists := col[required]; !exists {
			return nil, fmt.Errorf("airports: header missing column %q", required)
		}
	}

	field := func(vals []string, name string) string {
		i,exists := col[name]
		if !exists || i >= len(vals) { return "" }
		return vals[i]
	}

	t := Table{
		byICAO: map[string]*Airport{},
		byIATA: map[string]*Airport{},
	}

	row := 1
	for {
		vals,err := csvReader.Read()
		if err == io.EOF { break }
		row++
		if err != nil {
			log.Printf("airports: row %d unparseable, skipping: %v", row, err)
			continue
		}

		icao := field(vals, "icao_code")
		if icao == "" {
			continue // lots of heliports etc. have no ICAO code; not worth a warning each
		}

		lat,latErr  := strconv.ParseFloat(field(vals, "latitude_deg"), 64)
		long,longErr := strconv.ParseFloat(field(vals, "longitude_deg"), 64)
		if latErr != nil || longErr != nil {
			log.Printf("airports: row %d (%s) has bad position, skipping", row, icao)
			continue
		}

		t.all = append(t.all, Airport{
			ICAO: icao,
			IATA: field(vals, "iata_code"),
			Name: field(vals, "name"),
			Latlong: geo.Latlong{Lat:lat, Long:long},
			Country: field(vals, "iso_country"),
		})
	}

	for i := range t.all {
		a := &t.all[i]
		t.byICAO[a.ICAO] = a
		if a.IATA != "" { t.byIATA[a.IATA] = a }
	}

	return &t, nil
}

// }}}

func LoadTableFile(filename string) (*Table, error) {
	f,err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("airports: %w", err)
	}
	defer f.Close()
	return LoadTable(f)
}
