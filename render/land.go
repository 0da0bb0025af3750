package render

import (
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
)

// Land geometry comes from a fixed GeoJSON dataset (Natural Earth 110m
// coastlines work fine). Only the outlines get drawn; polygons that never
// reach the map disc are dropped wholesale.

func LoadLand(filename string) (*geojson.FeatureCollection, error) {
	data,err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	fc,err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("render: bad land geometry: %w", err)
	}
	return fc, nil
}

// DrawLand draws every polygon ring in the collection, clipped to the disc.
func (pg PolarGrid)DrawLand(fc *geojson.FeatureCollection) {
	pg.SetDrawColor(0x99, 0x99, 0x99)
	pg.SetLineWidth(0.15)

	pg.BeginClip()
	for _,f := range fc.Features {
		if f.Geometry == nil { continue }
		switch {
		case f.Geometry.IsPolygon():
			for _,ring := range f.Geometry.Polygon {
				pg.drawRing(ring)
			}
		case f.Geometry.IsMultiPolygon():
			for _,poly := range f.Geometry.MultiPolygon {
				for _,ring := range poly {
					pg.drawRing(ring)
				}
			}
		}
	}
	pg.EndClip()
	pg.SetLineWidth(0.2)
}

// GeoJSON coordinates are [long, lat].
func (pg PolarGrid)drawRing(ring [][]float64) {
	anyInside := false
	for _,coord := range ring {
		if len(coord) >= 2 && coord[1] >= pg.MinLat {
			anyInside = true
			break
		}
	}
	if !anyInside { return }

	for i,coord := range ring {
		if len(coord) < 2 { continue }
		if i == 0 {
			pg.MoveTo(coord[1], coord[0])
		} else {
			pg.LineTo(coord[1], coord[0])
		}
	}
	pg.DrawPath("D")
}
