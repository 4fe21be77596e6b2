package geo

import (
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-polyline"
)

// EncodePolyline encodes points as a Google polyline, Y first like latitude.
func EncodePolyline(pts []r2.Point) string {
	coords := make([][]float64, len(pts))
	for i, p := range pts {
		coords[i] = []float64{p.Y, p.X}
	}
	return string(polyline.EncodeCoords(coords))
}

func DecodePolyline(s string) ([]r2.Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	pts := make([]r2.Point, len(coords))
	for i, c := range coords {
		pts[i] = r2.Point{X: c[1], Y: c[0]}
	}
	return pts, nil
}
