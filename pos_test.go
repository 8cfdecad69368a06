// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElevationOnEquator(t *testing.T) {
	assert := assert.New(t)
	rx := PosXYZ{X: Re}

	// Straight up: geodetic and geocentric verticals coincide on the equator
	up := PosXYZ{X: Re + 20000e3}
	assert.InDelta(math.Pi/2, rx.Elevation(up), 1e-9)
	assert.InDelta(math.Pi/2, rx.ElevationGeocentric(up), 1e-9)

	// Due north on the horizon plane
	north := PosXYZ{X: Re, Z: 10000e3}
	assert.InDelta(0, rx.Elevation(north), 1e-9)
	assert.InDelta(0, rx.ElevationGeocentric(north), 1e-9)
	assert.InDelta(0, rx.Azimuth(north), 1e-9)
	assert.InDelta(0, rx.AzimuthGeocentric(north), 1e-9)

	// West is 270 deg, not -90
	west := PosXYZ{X: Re, Y: -10000e3}
	assert.InDelta(ToRad(270), rx.Azimuth(west), 1e-9)
	assert.InDelta(ToRad(270), rx.AzimuthGeocentric(west), 1e-9)
}

func TestElevationGeodeticVsGeocentric(t *testing.T) {
	assert := assert.New(t)
	llh := PosLLH{Lat: ToRad(45), Lon: 0, Hei: 0}
	rx := llh.ToXYZ()

	// Along the ellipsoid normal
	n := PosXYZ{X: math.Cos(llh.Lat), Z: math.Sin(llh.Lat)}
	sat := PosXYZ{X: rx.X + 20000e3*n.X, Z: rx.Z + 20000e3*n.Z}
	assert.InDelta(90, ToDeg(rx.Elevation(sat)), 1e-6)
	assert.InDelta(90, ToDeg(llh.Elevation(sat)), 1e-6)

	// The geocentric vertical is tilted by about 0.19 deg at 45 deg latitude
	assert.InDelta(90-0.192, ToDeg(rx.ElevationGeocentric(sat)), 0.01)
}

func TestPosConversions(t *testing.T) {
	assert := assert.New(t)
	llh := PosLLH{Lat: ToRad(35.73101206), Lon: ToRad(139.7396917), Hei: 80.33}
	xyz := llh.ToXYZ()
	back := xyz.ToLLH()
	assert.InDelta(llh.Lat, back.Lat, 1e-10)
	assert.InDelta(llh.Lon, back.Lon, 1e-10)
	assert.InDelta(llh.Hei, back.Hei, 1e-4)

	enu := PosENU{E: 10, N: -20, U: 30}
	p := enu.ToXYZ(xyz)
	got := p.ToENU(xyz)
	assert.InDelta(10, got.E, 1e-6)
	assert.InDelta(-20, got.N, 1e-6)
	assert.InDelta(30, got.U, 1e-6)
	assert.InDelta(math.Sqrt(1400), p.Dist(xyz), 1e-6)
}

func TestPosLLHSet(t *testing.T) {
	assert := assert.New(t)
	var llh PosLLH
	assert.NoError(llh.Set("35.5 139.25 80"))
	assert.InDelta(ToRad(35.5), llh.Lat, 1e-12)
	assert.InDelta(ToRad(139.25), llh.Lon, 1e-12)
	assert.Equal(80.0, llh.Hei)
	assert.NoError(llh.Set("1,2,3"))
	assert.Equal(3.0, llh.Hei)
	assert.Error(llh.Set("35.5 139.25"))
	assert.Error(llh.Set("a b c"))
}

func TestVectorHelpers(t *testing.T) {
	assert := assert.New(t)
	a := PosXYZ{X: 1, Y: 2, Z: 2}
	b := PosXYZ{X: -2, Y: 0, Z: 1}
	assert.InDelta(3.0, a.Norm(), 1e-12)
	assert.Equal(0.0, a.Dot(b))
	assert.Equal(PosXYZ{X: 3, Y: 2, Z: 1}, a.Sub(b))
	assert.Equal(PosXYZ{X: 2, Y: 4, Z: 4}, a.Scale(2))
	assert.InDelta(math.Sqrt(14), a.Dist(b), 1e-12)
}
