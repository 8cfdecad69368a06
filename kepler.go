// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"math"
)

const (
	MUe        = 3.986005e14 // Earth gravitational constant [m^3/s^2]
	gpsSqrtA   = 5153.6      // Square root of the GPS semi-major axis [m^0.5]
	gpsInclin  = 55.0        // GPS orbit inclination [deg]
	velDiffSec = 0.5         // Half step [s] of the central difference used for velocity
)

// KeplerOrbit is a set of Keplerian elements with a polynomial clock, used to generate
// tabular ephemeris records (a stand-in for a precise orbit product)
type KeplerOrbit struct {
	Sat    SatType
	Toe    GTime   // Reference time of the elements and clock
	SqrtA  float64 // Square root of the semi-major axis [m^0.5]
	Ecc    float64 // Eccentricity
	I0     float64 // Inclination [rad]
	Omega0 float64 // Longitude of the ascending node at the start of the GPS week [rad]
	Omega  float64 // Argument of perigee [rad]
	M0     float64 // Mean anomaly at Toe [rad]
	DeltaN float64 // Mean motion difference [rad/s]
	OmegaD float64 // Rate of the right ascension [rad/s]
	Idot   float64 // Rate of the inclination [rad/s]
	Af0    float64 // Clock bias [s]
	Af1    float64 // Clock drift [s/s]
}

// Position returns the earth fixed position at t
func (e *KeplerOrbit) Position(t GTime) (xyz PosXYZ) {
	tk := t.Sub(e.Toe)
	n := math.Sqrt(MUe)/e.SqrtA/e.SqrtA/e.SqrtA + e.DeltaN
	mk := e.M0 + n*tk
	ek := mk
	for i := 0; i < 10; i++ {
		ek = mk + e.Ecc*math.Sin(ek)
	}
	rk := e.SqrtA * e.SqrtA * (1 - e.Ecc*math.Cos(ek))
	vk := math.Atan2(math.Sqrt(1-e.Ecc*e.Ecc)*math.Sin(ek), math.Cos(ek)-e.Ecc)
	uk := vk + e.Omega
	ik := e.I0 + e.Idot*tk
	xk := rk * math.Cos(uk)
	yk := rk * math.Sin(uk)
	omk := e.Omega0 + (e.OmegaD-OMGe)*tk - OMGe*e.Toe.Sec
	xyz.X = xk*math.Cos(omk) - yk*math.Sin(omk)*math.Cos(ik)
	xyz.Y = xk*math.Sin(omk) + yk*math.Cos(omk)*math.Cos(ik)
	xyz.Z = yk * math.Sin(ik)
	return
}

// Velocity returns the earth fixed velocity at t (central difference of Position)
func (e *KeplerOrbit) Velocity(t GTime) PosXYZ {
	p1 := e.Position(t.Add(velDiffSec))
	p0 := e.Position(t.Add(-velDiffSec))
	return p1.Sub(p0).Scale(1 / (2 * velDiffSec))
}

// Clock returns the clock bias [s] at t
func (e *KeplerOrbit) Clock(t GTime) float64 {
	return e.Af0 + e.Af1*t.Sub(e.Toe)
}

// Records samples the orbit from ts to te every step seconds, in SP3 units.
// Velocity records are added when withVel is true.
func (e *KeplerOrbit) Records(ts, te GTime, step float64, withVel bool) []Record {
	recs := []Record{}
	for t := ts; t.Compare(te) <= 0; t = t.Add(step) {
		p := e.Position(t)
		recs = append(recs, Record{
			Sat:  e.Sat,
			Time: t,
			Kind: PositionRecord,
			Vec:  [3]float64{p.X / kmToM, p.Y / kmToM, p.Z / kmToM},
			Clk:  e.Clock(t) / usToS,
		})
		if withVel {
			v := e.Velocity(t)
			recs = append(recs, Record{
				Sat:  e.Sat,
				Time: t,
				Kind: VelocityRecord,
				Vec:  [3]float64{v.X / dmpsToMps, v.Y / dmpsToMps, v.Z / dmpsToMps},
				Clk:  e.Af1 / driftToSps,
			})
		}
	}
	return recs
}

// NewGPSConstellation returns nominal near circular GPS orbits for the given satellites,
// spread over six planes with four slots each
func NewGPSConstellation(sats []SatType, toe GTime) []*KeplerOrbit {
	orbits := make([]*KeplerOrbit, 0, len(sats))
	for _, sat := range sats {
		k := sat.Num() - 1
		if k < 0 {
			k = 0
		}
		plane := k % 6
		slot := (k / 6) % 4
		orbits = append(orbits, &KeplerOrbit{
			Sat:    sat,
			Toe:    toe,
			SqrtA:  gpsSqrtA,
			Ecc:    0.005 + 0.001*float64(plane),
			I0:     ToRad(gpsInclin),
			Omega0: ToRad(60 * float64(plane)),
			Omega:  ToRad(30 * float64(slot)),
			M0:     ToRad(90*float64(slot) + 15*float64(plane)),
			OmegaD: -8.0e-9,
			Af0:    1e-5 * float64(k%7-3),
			Af1:    1e-12 * float64(k%5-2),
		})
	}
	return orbits
}
