// Package render draws collected flight tracks on a north-polar map: a
// circular stereographic-style disc with latitude rings at 75/80/85N, land
// outlines from a GeoJSON dataset, and one colored polyline per flight,
// colored by airline code.
package render

import (
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	pr "github.com/arcticpaths/polarrush"
)

// The map disc on a landscape A4 page.
var(
	PageW = 297.0
	PageH = 210.0
	DiscRadius = 90.0

	KDefaultMinLat = 70.0
)

// Airline palette, cycled by assignment order (tab20-ish).
var airlineColors = [][]int{
	{0x1F, 0x77, 0xB4},
	{0xFF, 0x7F, 0x0E},
	{0x2C, 0xA0, 0x2C},
	{0xD6, 0x27, 0x28},
	{0x94, 0x67, 0xBD},
	{0x8C, 0x56, 0x4B},
	{0xE3, 0x77, 0xC2},
	{0x7F, 0x7F, 0x7F},
	{0xBC, 0xBD, 0x22},
	{0x17, 0xBE, 0xCF},
	{0xAE, 0xC7, 0xE8},
	{0xFF, 0xBB, 0x78},
}

var unknownAirlineColor = []int{0x50, 0x50, 0x50}

type Renderer struct {
	MinLat       float64
	ThresholdLat float64
	LandFile     string // optional; no land outlines when empty
	OnlyCrossed  bool   // draw only flights that crossed the threshold
}

func NewRenderer() *Renderer {
	return &Renderer{
		MinLat: KDefaultMinLat,
		ThresholdLat: 80.0,
	}
}

// {{{ r.Render

func (r *Renderer)Render(flights []pr.EnrichedFlight, tracks map[string]pr.Track, outfile string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 10)

	pg := PolarGrid{
		Fpdf: pdf,
		CenterU: PageW/2.0,
		CenterV: PageH/2.0,
		Radius: DiscRadius,
		MinLat: r.MinLat,
		CentralLongitude: 0.0,
		LineColor: []int{0x80, 0x80, 0x80},
	}

	pg.DrawBoundary()
	pg.DrawMeridians(30.0)
	for _,lat := range []float64{75.0, 80.0, 85.0} {
		pg.DrawLatitudeRing(lat)
	}

	if r.LandFile != "" {
		land,err := LoadLand(r.LandFile)
		if err != nil {
			return err
		}
		pg.DrawLand(land)
	}

	colors := assignAirlineColors(flights)

	pg.BeginClip()
	nDrawn := 0
	for _,ef := range flights {
		if r.OnlyCrossed && !ef.CrossedThreshold { continue }
		t,exists := tracks[ef.FlightID]
		if !exists || len(t) < 2 { continue }

		rgb := colors[ef.AirlineCode]
		pdf.SetDrawColor(rgb[0], rgb[1], rgb[2])
		pdf.SetLineWidth(0.3)
		drawTrack(pg, t)
		nDrawn++
	}
	pg.EndClip()

	drawTitle(pdf, fmt.Sprintf("Arctic flight tracks - %d flights, threshold %.0fN",
		nDrawn, r.ThresholdLat))
	drawLegend(pdf, colors)

	return pdf.OutputFileAndClose(outfile)
}

// }}}
// {{{ drawTrack

func drawTrack(pg PolarGrid, t pr.Track) {
	for i,tp := range t {
		if i == 0 {
			pg.MoveTo(tp.Lat, tp.Long)
		} else {
			pg.LineTo(tp.Lat, tp.Long)
		}
	}
	pg.DrawPath("D")
}

// }}}
// {{{ assignAirlineColors

// Colors are assigned to airline codes in sorted order, so two renders of
// the same data look the same.
func assignAirlineColors(flights []pr.EnrichedFlight) map[string][]int {
	codes := []string{}
	seen := map[string]bool{}
	for _,ef := range flights {
		if ef.AirlineCode == "" || seen[ef.AirlineCode] { continue }
		seen[ef.AirlineCode] = true
		codes = append(codes, ef.AirlineCode)
	}
	sort.Strings(codes)

	ret := map[string][]int{"": unknownAirlineColor}
	for i,code := range codes {
		ret[code] = airlineColors[i % len(airlineColors)]
	}
	return ret
}

// }}}
// {{{ drawTitle, drawLegend

func drawTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0x20, 0x20, 0x20)
	pdf.Text(10, 12, title)
}

func drawLegend(pdf *gofpdf.Fpdf, colors map[string][]int) {
	codes := []string{}
	for code := range colors {
		if code != "" { codes = append(codes, code) }
	}
	sort.Strings(codes)

	pdf.SetFont("Arial", "", 8)
	y := 20.0
	for _,code := range codes {
		rgb := colors[code]
		pdf.SetDrawColor(rgb[0], rgb[1], rgb[2])
		pdf.SetLineWidth(0.8)
		pdf.MoveTo(10, y-1)
		pdf.LineTo(18, y-1)
		pdf.DrawPath("D")
		pdf.SetTextColor(0x20, 0x20, 0x20)
		pdf.Text(20, y, code)
		y += 4.5
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
