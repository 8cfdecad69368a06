// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//-------------------------------------------------------------------
// PosLLH
//-------------------------------------------------------------------

type PosLLH struct {
	Lat float64
	Lon float64
	Hei float64
}

func NewPosLLH(lat, lon, hei float64) *PosLLH {
	return &PosLLH{
		Lat: lat,
		Lon: lon,
		Hei: hei,
	}
}

func (llh *PosLLH) ToXYZ() PosXYZ {
	// Ellipsoid parameters
	f := Fe                     // Flattening
	a := Re                     // Semi-major axis
	e := math.Sqrt(f * (2 - f)) // Eccentricity

	// Conversion to Cartesian coordinates
	n := a / math.Sqrt(1-e*e*math.Sin(llh.Lat)*math.Sin(llh.Lat))
	return PosXYZ{
		X: (n + llh.Hei) * math.Cos(llh.Lat) * math.Cos(llh.Lon),
		Y: (n + llh.Hei) * math.Cos(llh.Lat) * math.Sin(llh.Lon),
		Z: (n*(1-e*e) + llh.Hei) * math.Sin(llh.Lat),
	}
}

func (llh *PosLLH) ToENU(base PosXYZ) PosENU {
	xyz := llh.ToXYZ()
	return xyz.ToENU(base)
}

func (usr *PosLLH) Elevation(sat PosXYZ) float64 {
	xyz := usr.ToXYZ()
	return xyz.Elevation(sat)
}

func (usr *PosLLH) Azimuth(sat PosXYZ) float64 {
	xyz := usr.ToXYZ()
	return xyz.Azimuth(sat)
}

// Read from string "lat lon hei" ([deg] [deg] [m]), also accepts commas
func (llh *PosLLH) Set(s string) error {
	var err error
	f := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(f) != 3 {
		return fmt.Errorf("expected \"lat lon hei\", got %q", s)
	}
	llh.Lat, err = strconv.ParseFloat(f[0], 64)
	if err != nil {
		return err
	}
	llh.Lon, err = strconv.ParseFloat(f[1], 64)
	if err != nil {
		return err
	}
	llh.Hei, err = strconv.ParseFloat(f[2], 64)
	if err != nil {
		return err
	}
	llh.Lat *= math.Pi / 180
	llh.Lon *= math.Pi / 180
	return nil
}

// Convert to string
func (llh *PosLLH) String() string {
	return fmt.Sprintf("%.8f %.8f %.4f", llh.Lat, llh.Lon, llh.Hei)
}

//-------------------------------------------------------------------
// PosXYZ
//-------------------------------------------------------------------

type PosXYZ struct {
	X float64
	Y float64
	Z float64
}

func NewPosXYZ(x, y, z float64) *PosXYZ {
	return &PosXYZ{
		X: x,
		Y: y,
		Z: z,
	}
}

func (pos *PosXYZ) ToLLH() PosLLH {
	// In case of origin
	if pos.X == 0 && pos.Y == 0 && pos.Z == 0 {
		return PosLLH{Lat: 0, Lon: 0, Hei: -Re}
	}

	// Ellipsoid parameters
	f := Fe                     // Flattening
	a := Re                     // Semi-major axis
	b := a * (1 - f)            // Semi-minor axis
	e := math.Sqrt(f * (2 - f)) // Eccentricity

	// Parameters for coordinate transformation
	h := a*a - b*b
	p := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y)
	t := math.Atan2(pos.Z*a, p*b)
	sint := math.Sin(t)
	cost := math.Cos(t)

	// Conversion to latitude and longitude
	lat := math.Atan2(pos.Z+h/b*sint*sint*sint, p-h/a*cost*cost*cost)
	lon := math.Atan2(pos.Y, pos.X)
	n := a / math.Sqrt(1-e*e*math.Sin(lat)*math.Sin(lat)) // Radius of curvature in the prime vertical
	hei := p/math.Cos(lat) - n
	return PosLLH{Lat: lat, Lon: lon, Hei: hei}
}

func (pos *PosXYZ) ToENU(base PosXYZ) PosENU {
	// Local frame at the geodetic latitude and longitude of the reference location
	llh := base.ToLLH()
	return pos.toENUAt(base, llh.Lat, llh.Lon)
}

// Geodetic elevation angle [rad] of sat seen from usr (local vertical is the ellipsoid normal)
func (usr *PosXYZ) Elevation(sat PosXYZ) float64 {
	enu := sat.ToENU(*usr)
	return enu.Elevation()
}

// Geodetic azimuth angle [rad] in [0, 2pi), clockwise from north
func (usr *PosXYZ) Azimuth(sat PosXYZ) float64 {
	enu := sat.ToENU(*usr)
	return enu.Azimuth()
}

// Geocentric elevation angle [rad]: local vertical is the direction from the earth center
func (usr *PosXYZ) ElevationGeocentric(sat PosXYZ) float64 {
	enu := sat.toENUAt(*usr, usr.geocentricLat(), math.Atan2(usr.Y, usr.X))
	return enu.Elevation()
}

// Geocentric azimuth angle [rad] in [0, 2pi)
func (usr *PosXYZ) AzimuthGeocentric(sat PosXYZ) float64 {
	enu := sat.toENUAt(*usr, usr.geocentricLat(), math.Atan2(usr.Y, usr.X))
	return enu.Azimuth()
}

func (pos *PosXYZ) geocentricLat() float64 {
	return math.Atan2(pos.Z, math.Hypot(pos.X, pos.Y))
}

// Rotate the relative position into a local frame at the given latitude and longitude
func (pos *PosXYZ) toENUAt(base PosXYZ, lat, lon float64) PosENU {
	x := pos.X - base.X
	y := pos.Y - base.Y
	z := pos.Z - base.Z
	s1, c1 := math.Sincos(lon)
	s2, c2 := math.Sincos(lat)
	return PosENU{
		E: -x*s1 + y*c1,
		N: -x*c1*s2 - y*s1*s2 + z*c2,
		U: x*c1*c2 + y*s1*c2 + z*s2,
	}
}

// Vector helpers

func (pos PosXYZ) Slice() []float64 {
	return []float64{pos.X, pos.Y, pos.Z}
}

func (pos PosXYZ) Sub(b PosXYZ) PosXYZ {
	return PosXYZ{X: pos.X - b.X, Y: pos.Y - b.Y, Z: pos.Z - b.Z}
}

func (pos PosXYZ) Scale(k float64) PosXYZ {
	return PosXYZ{X: pos.X * k, Y: pos.Y * k, Z: pos.Z * k}
}

func (pos PosXYZ) Dot(b PosXYZ) float64 {
	return floats.Dot(pos.Slice(), b.Slice())
}

func (pos PosXYZ) Norm() float64 {
	return floats.Norm(pos.Slice(), 2)
}

// Dist is the straight line distance (slant range) between two points
func (pos PosXYZ) Dist(b PosXYZ) float64 {
	return floats.Distance(pos.Slice(), b.Slice(), 2)
}

func (pos PosXYZ) String() string {
	return fmt.Sprintf("%.4f %.4f %.4f", pos.X, pos.Y, pos.Z)
}

//-------------------------------------------------------------------
// PosENU
//-------------------------------------------------------------------

type PosENU struct {
	E float64
	N float64
	U float64
}

func NewPosENU(e, n, u float64) *PosENU {
	return &PosENU{
		E: e,
		N: n,
		U: u,
	}
}

func (enu *PosENU) ToXYZ(base PosXYZ) PosXYZ {
	// Latitude and longitude of the reference location
	llh := base.ToLLH()
	s1 := math.Sin(llh.Lon)
	c1 := math.Cos(llh.Lon)
	s2 := math.Sin(llh.Lat)
	c2 := math.Cos(llh.Lat)

	// Rotate the ENU coordinates to convert to relative position
	x := -enu.E*s1 - enu.N*c1*s2 + enu.U*c1*c2
	y := enu.E*c1 - enu.N*s1*s2 + enu.U*s1*c2
	z := enu.N*c2 + enu.U*s2

	// Add to the reference location
	x += base.X
	y += base.Y
	z += base.Z
	return PosXYZ{
		X: x,
		Y: y,
		Z: z,
	}
}

func (enu *PosENU) Elevation() float64 {
	return math.Atan2(enu.U, math.Sqrt(enu.E*enu.E+enu.N*enu.N))
}

func (enu *PosENU) Azimuth() float64 {
	az := math.Atan2(enu.E, enu.N)
	if az < 0 {
		az += 2 * math.Pi
	}
	return az
}
