package service

import (
	"fmt"
	"math"
	"strconv"
)

// Coordinate is a position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GridPoint is a coordinate in canonical form: exactly four fractional
// digits, sign preserved.
type GridPoint struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// FormatDegrees renders v with exactly four fractional digits.
func FormatDegrees(v float64) string {
	if v == 0 {
		// normalise negative zero
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.Abs(c.Lat) > 90 || math.Abs(c.Lon) > 180 {
		return fmt.Errorf("%w: %v,%v", ErrInvalidCoordinate, c.Lat, c.Lon)
	}
	return nil
}

func (c Coordinate) Canonical() GridPoint {
	return GridPoint{Lat: FormatDegrees(c.Lat), Lon: FormatDegrees(c.Lon)}
}

// Grid enumerates the tolerance grid around center: latitude outer,
// longitude inner, each axis stepped by repeated addition from its minimum
// bound up to and including its maximum bound.
//
// The result is empty only for degenerate params; callers detect that.
func (p Params) Grid(center Coordinate) []GridPoint {
	offset := p.DegreeOffset()

	lats := axis(center.Lat-offset, center.Lat+offset, p.Step)
	lons := axis(center.Lon-offset, center.Lon+offset, p.Step)

	points := make([]GridPoint, 0, len(lats)*len(lons))
	for _, lat := range lats {
		for _, lon := range lons {
			points = append(points, GridPoint{Lat: lat, Lon: lon})
		}
	}
	return points
}

func axis(lo, hi, step float64) []string {
	if !(step > 0) {
		return nil
	}
	var values []string
	for v := lo; v <= hi && len(values) < MaxGridPoints; v += step {
		values = append(values, FormatDegrees(v))
		if v+step == v {
			break
		}
	}
	return values
}
