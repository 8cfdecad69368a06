// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
)

// RangeOpt contains options for the corrected range computation
type RangeOpt struct {
	InitialTOF   float64      // First guess of the time of flight [s]
	TOFTolerance float64      // Convergence threshold of the time of flight [s]
	MaxIter      int          // Maximum number of lookups in ComputeAtReceiveTime
	TransmitIter int          // Number of satellite clock refinements in ComputeAtTransmitTime
	Logger       *slog.Logger // Logger (optional)
	Metrics      *Metrics     // Metrics (optional)
}

// NewRangeOpt creates a new RangeOpt with default values
func NewRangeOpt() *RangeOpt {
	return &RangeOpt{
		InitialTOF:   0.07,  // 70ms, typical for GNSS altitudes
		TOFTolerance: 1e-13, // [s]
		MaxIter:      5,     // Fixed cap, stops silently
		TransmitIter: 2,     // Two clock refinements
		Logger:       nil,
		Metrics:      nil,
	}
}

// RangeSol is the corrected range and the quantities computed with it
type RangeSol struct {
	RawRange          float64     // Geometric range from receiver to satellite [m]
	SvClkBias         float64     // Satellite clock bias without relativity [m]
	SvClkDrift        float64     // Satellite clock drift [m/s]
	Relativity        float64     // Relativity correction [m]
	Elevation         float64     // Geocentric elevation [deg]
	Azimuth           float64     // Geocentric azimuth [deg]
	ElevationGeodetic float64     // Geodetic elevation [deg]
	AzimuthGeodetic   float64     // Geodetic azimuth [deg]
	Cosines           [3]float64  // Unit vector from satellite to receiver
	Corrected         float64     // RawRange - SvClkBias - Relativity [m]
	Transmit          GTime       // Transmit time used for the last lookup
	SvPosVel          StateSample // Satellite state after earth rotation
	Iterations        int         // Number of ephemeris lookups
}

// RangeSolver computes corrected ephemeris ranges
type RangeSolver struct {
	opt RangeOpt
	log *slog.Logger
}

// NewRangeSolver creates a solver. A nil opt means NewRangeOpt().
func NewRangeSolver(opt *RangeOpt) *RangeSolver {
	if opt == nil {
		opt = NewRangeOpt()
	}
	s := &RangeSolver{opt: *opt, log: opt.Logger}
	if s.opt.MaxIter < 1 {
		s.opt.MaxIter = 1
	}
	if s.log == nil {
		s.log = nopLogger()
	}
	return s
}

// ComputeAtReceiveTime computes the corrected range at the nominal receive time trNom from
// the receiver at rx to sat. The time of flight is found by fixed point iteration which
// stops when it changes by less than TOFTolerance or after MaxIter lookups, whichever
// comes first; reaching the cap is not an error. The receiver clock error is not handled.
func (s *RangeSolver) ComputeAtReceiveTime(trNom GTime, rx PosXYZ, sat SatType, src Source) (*RangeSol, error) {
	rslt := &RangeSol{}
	tof := s.opt.InitialTOF
	for {
		rslt.Transmit = trNom.Add(-tof)
		tofOld := tof
		sv, err := src.GetState(sat, rslt.Transmit)
		if err != nil {
			s.opt.Metrics.observeSolve(AtReceiveTime, rslt.Iterations, err)
			return nil, fmt.Errorf("ComputeAtReceiveTime() failed, sat=%s: %w", sat, err)
		}
		rslt.Iterations++
		rslt.SvPosVel = RotateEarth(sv, rx)
		rslt.RawRange = rslt.SvPosVel.Pos.Dist(rx)
		tof = rslt.RawRange / C
		if math.Abs(tof-tofOld) <= s.opt.TOFTolerance || rslt.Iterations >= s.opt.MaxIter {
			break
		}
	}
	s.updateCER(rslt, rx)
	s.opt.Metrics.observeSolve(AtReceiveTime, rslt.Iterations, nil)
	s.log.Debug("range at receive time", "sat", string(sat), "iter", rslt.Iterations, "range", rslt.Corrected)
	return rslt, nil
}

// ComputeAtTransmitTime computes the corrected range given the nominal receive time and
// the measured pseudorange pr [m]. The transmit time starts at trNom - pr/c and is
// corrected for the satellite clock TransmitIter times.
func (s *RangeSolver) ComputeAtTransmitTime(trNom GTime, pr float64, rx PosXYZ, sat SatType, src Source) (*RangeSol, error) {
	rslt := &RangeSol{}
	transmit := trNom.Add(-pr / C)
	tt := transmit
	var sv StateSample
	for i := 0; i < s.opt.TransmitIter || i == 0; i++ {
		var err error
		sv, err = src.GetState(sat, tt)
		if err != nil {
			s.opt.Metrics.observeSolve(AtTransmitTime, rslt.Iterations, err)
			return nil, fmt.Errorf("ComputeAtTransmitTime() failed, sat=%s: %w", sat, err)
		}
		rslt.Iterations++
		rslt.Transmit = tt
		tt = transmit.Add(-sv.ClkBias) // Clock bias already includes relativity
	}
	rslt.SvPosVel = RotateEarth(sv, rx)
	rslt.RawRange = rslt.SvPosVel.Pos.Dist(rx)
	s.updateCER(rslt, rx)
	s.opt.Metrics.observeSolve(AtTransmitTime, rslt.Iterations, nil)
	return rslt, nil
}

// ComputeAtTransmitSvTime computes the corrected range from a single lookup at the
// nominal transmit time ttNom (satellite clock). The earth rotation during the signal
// transit uses a first order rotation about the polar axis, updating x before y, which
// differs from RotateEarth used by the other two modes. It is unknown which of the two
// is more correct, so both are kept as they are.
func (s *RangeSolver) ComputeAtTransmitSvTime(ttNom GTime, pr float64, rx PosXYZ, sat SatType, src Source) (*RangeSol, error) {
	sv, err := src.GetState(sat, ttNom)
	if err != nil {
		s.opt.Metrics.observeSolve(AtTransmitSvTime, 0, err)
		return nil, fmt.Errorf("ComputeAtTransmitSvTime() failed, sat=%s: %w", sat, err)
	}
	rslt := &RangeSol{Transmit: ttNom, Iterations: 1}

	// Rotation angle during the signal transit
	a := -OMGe * (pr/C - sv.ClkBias)
	sv.Pos.X = sv.Pos.X - sv.Pos.Y*a
	sv.Pos.Y = sv.Pos.Y + sv.Pos.X*a
	rslt.SvPosVel = sv
	rslt.RawRange = sv.Pos.Dist(rx)
	s.updateCER(rslt, rx)
	s.opt.Metrics.observeSolve(AtTransmitSvTime, rslt.Iterations, nil)
	return rslt, nil
}

// Fill the clock, relativity and geometry terms from the final satellite state
func (s *RangeSolver) updateCER(rslt *RangeSol, rx PosXYZ) {
	sv := rslt.SvPosVel
	rslt.Relativity = RelativityCorrection(sv) * C
	rslt.SvClkBias = sv.ClkBias*C - rslt.Relativity // The store adds relativity to ClkBias
	rslt.SvClkDrift = sv.ClkDrift * C

	d := rx.Sub(sv.Pos).Scale(1 / rslt.RawRange)
	rslt.Cosines = [3]float64{d.X, d.Y, d.Z}

	rslt.Elevation = ToDeg(rx.ElevationGeocentric(sv.Pos))
	rslt.Azimuth = ToDeg(rx.AzimuthGeocentric(sv.Pos))
	rslt.ElevationGeodetic = ToDeg(rx.Elevation(sv.Pos))
	rslt.AzimuthGeodetic = ToDeg(rx.Azimuth(sv.Pos))
	rslt.Corrected = rslt.RawRange - rslt.SvClkBias - rslt.Relativity
}

// RotateEarth rotates the satellite position and velocity about the polar axis by the
// earth rotation during the time of flight from the satellite to rx, bringing the
// earth fixed state at transmit time into the earth fixed frame at receive time.
func RotateEarth(sv StateSample, rx PosXYZ) StateSample {
	return RotateEarthTOF(sv, sv.Pos.Dist(rx)/C)
}

// RotateEarthTOF is RotateEarth for a given time of flight [s]
func RotateEarthTOF(sv StateSample, tof float64) StateSample {
	r := earthRotation(OMGe * tof)
	sv.Pos = rotate(r, sv.Pos)
	sv.Vel = rotate(r, sv.Vel)
	return sv
}

// Rotation matrix about the z axis by angle wt [rad]
func earthRotation(wt float64) *mat.Dense {
	s, c := math.Sincos(wt)
	return mat.NewDense(3, 3, []float64{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	})
}

func rotate(r mat.Matrix, p PosXYZ) PosXYZ {
	var v mat.VecDense
	v.MulVec(r, mat.NewVecDense(3, p.Slice()))
	return PosXYZ{X: v.AtVec(0), Y: v.AtVec(1), Z: v.AtVec(2)}
}

// RelativityCorrection is -2(r.v)/c^2 [s] of the satellite clock
func RelativityCorrection(sv StateSample) float64 {
	return -2.0 * (sv.Pos.Dot(sv.Vel) / C) / C
}
