package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFormatDegrees(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{18.4513, "18.4513"},
		{-69.9563, "-69.9563"},
		{1.5, "1.5000"},
		{0, "0.0000"},
		{math.Copysign(0, -1), "0.0000"},
		{-0.00001, "-0.0000"},
		{40.68912014, "40.6891"},
		{-74.04487986, "-74.0449"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatDegrees(c.in), "input %v", c.in)
	}
}

func TestGridAroundCenter(t *testing.T) {
	p := DefaultParams()
	points := p.Grid(Coordinate{Lat: 40.6893, Lon: -74.0447})

	require.Len(t, points, 16)
	assert.Equal(t, GridPoint{Lat: "40.6891", Lon: "-74.0449"}, points[0])
	assert.Equal(t, GridPoint{Lat: "40.6891", Lon: "-74.0446"}, points[3])
	assert.Equal(t, GridPoint{Lat: "40.6892", Lon: "-74.0449"}, points[4])
	assert.Equal(t, GridPoint{Lat: "40.6894", Lon: "-74.0446"}, points[15])
}

func TestGridContainsCenter(t *testing.T) {
	p := DefaultParams()
	center := Coordinate{Lat: 18.4513, Lon: -69.9563}
	assert.Contains(t, p.Grid(center), center.Canonical())
}

func TestGridDegenerateStep(t *testing.T) {
	p := DefaultParams()
	p.Step = 0
	assert.Empty(t, p.Grid(Coordinate{Lat: 1, Lon: 1}))
}

func TestGridDeterministic(t *testing.T) {
	p := DefaultParams()
	rapid.Check(t, func(t *rapid.T) {
		center := Coordinate{
			Lat: rapid.Float64Range(-89, 89).Draw(t, "lat"),
			Lon: rapid.Float64Range(-179, 179).Draw(t, "lon"),
		}
		first := p.Grid(center)
		second := p.Grid(center)
		require.NotEmpty(t, first)
		require.Equal(t, first, second)
	})
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	cases := map[string]func(p *Params){
		"zero step":        func(p *Params) { p.Step = 0 },
		"negative radius":  func(p *Params) { p.EarthRadius = -1 },
		"negative dist":    func(p *Params) { p.Distance = -0.1 },
		"huge grid":        func(p *Params) { p.Distance = 10 },
		"unknown hash":     func(p *Params) { p.Hash = "md5" },
		"unknown encoding": func(p *Params) { p.LeafEncoding = "json" },
		"unknown order":    func(p *Params) { p.PairOrder = "reverse" },
		"unknown odd node": func(p *Params) { p.OddNode = "drop" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := DefaultParams()
			mutate(&p)
			require.ErrorIs(t, p.Validate(), ErrInvalidParams)
		})
	}
}

func TestParamsValidateRejectsOverflowingGrid(t *testing.T) {
	tiny := DefaultParams()
	tiny.Step = 1e-300
	require.ErrorIs(t, tiny.Validate(), ErrInvalidParams)

	wide := DefaultParams()
	wide.Distance = 1e300
	require.ErrorIs(t, wide.Validate(), ErrInvalidParams)
}

func TestCoordinateValidate(t *testing.T) {
	require.NoError(t, Coordinate{Lat: 90, Lon: -180}.Validate())
	require.NoError(t, Coordinate{Lat: 18.4513, Lon: -69.9563}.Validate())

	for _, c := range []Coordinate{
		{Lat: 1e17},
		{Lat: 90.0001},
		{Lon: -180.5},
		{Lat: math.Inf(1)},
		{Lon: math.Inf(-1)},
		{Lat: math.NaN()},
	} {
		assert.ErrorIs(t, c.Validate(), ErrInvalidCoordinate, "%v", c)
	}
}

func TestGridStopsWhenStepVanishes(t *testing.T) {
	p := DefaultParams()
	for _, c := range []Coordinate{
		{Lat: 1e17, Lon: 0},
		{Lat: math.Inf(1), Lon: 0},
		{Lat: 0, Lon: math.Inf(-1)},
	} {
		assert.LessOrEqual(t, len(p.Grid(c)), 4, "%v", c)
	}
}
