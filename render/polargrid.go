package render

import (
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
)

// PolarGrid maps (lat,long) onto a north-polar stereographic disc in PDF
// space. The pole sits at the disc center; latitude MinLat is the disc edge.
type PolarGrid struct {
	*gofpdf.Fpdf         // Embed the thing we're writing to

	CenterU, CenterV float64 // disc center, in PDF coords (mm)
	Radius           float64 // disc radius, in PDF units (mm)

	MinLat           float64 // latitude of the disc edge; 90N is always the center
	CentralLongitude float64 // which meridian points straight up

	LineColor []int // rgb, each [0,255] - rings and labels
}

// {{{ pg.UV

// The bool is whether the point falls outside the disc (below MinLat).
func (pg PolarGrid)UV(lat, long float64) (float64, float64, bool) {
	// Linear-in-latitude radius; close enough to stereographic for a map
	// whose job is showing which side of the 80N ring a track went.
	rRatio := (90.0 - lat) / (90.0 - pg.MinLat)
	theta := (long - pg.CentralLongitude) * math.Pi / 180.0

	u := pg.CenterU + pg.Radius*rRatio*math.Sin(theta)
	v := pg.CenterV - pg.Radius*rRatio*math.Cos(theta)

	return u, v, rRatio > 1.0
}

// }}}
// {{{ pg.MoveTo, LineTo

// Coords go in as (lat,long); the grid transforms them into PDFspace.
func (pg PolarGrid)MoveTo(lat, long float64) bool {
	u,v,oob := pg.UV(lat, long)
	pg.Fpdf.MoveTo(u,v)
	return oob
}

func (pg PolarGrid)LineTo(lat, long float64) bool {
	u,v,oob := pg.UV(lat, long)
	pg.Fpdf.LineTo(u,v)
	return oob
}

// }}}
// {{{ pg.MaybeSet{Draw|Text}Color

func (pg PolarGrid)MaybeSetDrawColor() {
	if len(pg.LineColor) == 3 {
		pg.SetDrawColor(pg.LineColor[0], pg.LineColor[1], pg.LineColor[2])
	}
}

func (pg PolarGrid)MaybeSetTextColor() {
	if len(pg.LineColor) == 3 {
		pg.SetTextColor(pg.LineColor[0], pg.LineColor[1], pg.LineColor[2])
	}
}

// }}}

// {{{ pg.DrawBoundary

// DrawBoundary draws the circular map edge.
func (pg PolarGrid)DrawBoundary() {
	pg.MaybeSetDrawColor()
	pg.SetLineWidth(0.4)
	pg.Circle(pg.CenterU, pg.CenterV, pg.Radius, "D")
	pg.SetLineWidth(0.2)
}

// BeginClip restricts subsequent drawing to the disc; pair with EndClip.
func (pg PolarGrid)BeginClip() {
	pg.ClipCircle(pg.CenterU, pg.CenterV, pg.Radius, false)
}
func (pg PolarGrid)EndClip() {
	pg.ClipEnd()
}

// }}}
// {{{ pg.DrawLatitudeRing

func (pg PolarGrid)DrawLatitudeRing(lat float64) {
	rRatio := (90.0 - lat) / (90.0 - pg.MinLat)
	if rRatio <= 0 || rRatio > 1.0 { return }

	pg.MaybeSetDrawColor()
	pg.SetDashPattern([]float64{1.0,1.0}, 0)
	pg.Circle(pg.CenterU, pg.CenterV, pg.Radius*rRatio, "D")
	pg.SetDashPattern([]float64{}, 0)

	pg.MaybeSetTextColor()
	pg.SetFont("Arial", "", 7)
	u,v,_ := pg.UV(lat, pg.CentralLongitude+180.0) // label on the bottom meridian
	pg.Text(u+1.0, v-0.5, fmt.Sprintf("%.0fN", lat))
}

// }}}
// {{{ pg.DrawMeridians

func (pg PolarGrid)DrawMeridians(everyDeg float64) {
	pg.MaybeSetDrawColor()
	pg.SetDashPattern([]float64{0.5,1.5}, 0)
	for long := -180.0; long < 180.0; long += everyDeg {
		pg.MoveTo(90.0, long)
		pg.LineTo(pg.MinLat, long)
		pg.DrawPath("D")
	}
	pg.SetDashPattern([]float64{}, 0)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
