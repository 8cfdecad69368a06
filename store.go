// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"golang.org/x/exp/maps"
)

// Source is what range solvers need from an ephemeris store
type Source interface {
	GetState(sat SatType, t GTime) (StateSample, error)
}

// StoreOpt contains options for the tabular ephemeris store
type StoreOpt struct {
	Half            int          // Half the number of points used in the Lagrange interpolation
	CheckDataGap    bool         // If true, reject epochs inside a data gap
	GapInterval     float64      // Largest allowed distance [s] from the epoch to both neighbouring samples
	CheckInterval   bool         // If true, reject interpolation windows wider than MaxInterval
	MaxInterval     float64      // Largest allowed span [s] of the interpolation window
	TrackProvenance bool         // If true, keep a record of each loaded batch
	Logger          *slog.Logger // Logger (optional)
	Metrics         *Metrics     // Metrics (optional)
}

// NewStoreOpt creates a new StoreOpt with default values
// Defaults fit 15 minute precise orbit products
func NewStoreOpt() *StoreOpt {
	return &StoreOpt{
		Half:            5,      // 10 point interpolation
		CheckDataGap:    false,  // No gap check
		GapInterval:     901.0,  // One sample interval plus a second
		CheckInterval:   false,  // No window width check
		MaxInterval:     8105.0, // Nine sample intervals plus five seconds
		TrackProvenance: false,  // No batch bookkeeping
		Logger:          nil,
		Metrics:         nil,
	}
}

// Store keeps tabular ephemerides of many satellites and interpolates them.
// It is not safe for concurrent use: load first, then query.
type Store struct {
	opt   StoreOpt
	log   *slog.Logger
	sats  map[SatType]*satTable
	tmin  GTime // Earliest epoch seen (EndOfTime when empty)
	tmax  GTime // Latest epoch seen (BeginningOfTime when empty)
	prov  *Provenance
	batch *Batch // Batch being loaded, if any
}

// NewStore creates an empty store. A nil opt means NewStoreOpt().
func NewStore(opt *StoreOpt) *Store {
	if opt == nil {
		opt = NewStoreOpt()
	}
	s := &Store{
		opt:  *opt,
		log:  opt.Logger,
		sats: map[SatType]*satTable{},
		tmin: EndOfTime(),
		tmax: BeginningOfTime(),
	}
	if s.opt.Half < 1 {
		s.opt.Half = 1
	}
	if s.log == nil {
		s.log = nopLogger()
	}
	if opt.TrackProvenance {
		s.prov = NewProvenance()
	}
	return s
}

// SetGapCheck turns the data gap check on or off
func (s *Store) SetGapCheck(enabled bool, interval float64) {
	s.opt.CheckDataGap = enabled
	s.opt.GapInterval = interval
}

// SetIntervalCheck turns the interpolation window width check on or off
func (s *Store) SetIntervalCheck(enabled bool, max float64) {
	s.opt.CheckInterval = enabled
	s.opt.MaxInterval = max
}

// AddEphemeris stores one record. A position record sets position and clock bias of the
// (sat, t) slot, a velocity record sets velocity and clock drift; both merge into one slot.
func (s *Store) AddEphemeris(sat SatType, t GTime, kind RecordKind, v [3]float64, clk float64) {
	st, ok := s.sats[sat]
	if !ok {
		st = &satTable{}
		s.sats[sat] = st
	}
	st.put(t, kind, v, clk)
	if t.Compare(s.tmin) < 0 {
		s.tmin = t
	}
	if t.Compare(s.tmax) > 0 {
		s.tmax = t
	}
	if s.batch != nil {
		s.batch.add(t)
	}
	s.opt.Metrics.addRecord(kind)
}

// AddRecord stores a decoded record
func (s *Store) AddRecord(r Record) {
	s.AddEphemeris(r.Sat, r.Time, r.Kind, r.Vec, r.Clk)
}

// Edit removes the samples outside [tmin, tmax] of every satellite.
// The time span of the store becomes exactly [tmin, tmax] even if the data left is narrower.
func (s *Store) Edit(tmin, tmax GTime) {
	n := 0
	for _, st := range s.sats {
		n += st.trim(tmin, tmax)
	}
	s.tmin = tmin
	s.tmax = tmax
	s.log.Info("ephemeris edited", "tmin", tmin.String(), "tmax", tmax.String(), "removed", n)
}

// Clear removes all data
func (s *Store) Clear() {
	s.sats = map[SatType]*satTable{}
	s.tmin = EndOfTime()
	s.tmax = BeginningOfTime()
	s.log.Info("ephemeris cleared")
}

// InitialTime is the earliest epoch of the store (EndOfTime when empty)
func (s *Store) InitialTime() GTime {
	return s.tmin
}

// FinalTime is the latest epoch of the store (BeginningOfTime when empty)
func (s *Store) FinalTime() GTime {
	return s.tmax
}

// Satellites lists the satellites having a table, sorted
func (s *Store) Satellites() []SatType {
	return Sorted(maps.Keys(s.sats))
}

// Len is the number of samples of sat
func (s *Store) Len(sat SatType) int {
	st, ok := s.sats[sat]
	if !ok {
		return 0
	}
	return len(st.entries)
}

// HasVelocity reports whether velocity records were stored for sat
func (s *Store) HasVelocity(sat SatType) bool {
	st, ok := s.sats[sat]
	return ok && st.hasVel
}

// Provenance returns the batch bookkeeping, nil unless TrackProvenance was set
func (s *Store) Provenance() *Provenance {
	return s.prov
}

// GetState returns position, velocity and clock of sat at t in SI units.
// The clock bias includes the relativistic correction -2(r.v)/c^2.
func (s *Store) GetState(sat SatType, t GTime) (StateSample, error) {
	sv, exact, err := s.lookup(sat, t)
	s.opt.Metrics.observeLookup(err, exact)
	if err != nil {
		s.log.Debug("ephemeris lookup failed", "sat", string(sat), "t", t.String(), "reason", errorKind(err))
		return StateSample{}, err
	}
	sv.ClkBias += RelativityCorrection(sv)
	return sv, nil
}

func (s *Store) lookup(sat SatType, t GTime) (sv StateSample, exact bool, err error) {
	st, ok := s.sats[sat]
	if !ok {
		return sv, false, lookupError(ErrNotFound, sat, t)
	}

	// Exact match of t
	if i, found := st.search(t); found && st.hasVel {
		return st.entries[i].toSample(), true, nil
	}

	half := s.opt.Half
	lo, hi, err := st.window(t, half)
	if err != nil {
		return sv, false, lookupError(err, sat, t)
	}
	w := st.entries[lo:hi]

	// t is between w[half-1] and w[half]
	if s.opt.CheckDataGap &&
		math.Abs(t.Sub(w[half-1].Time)) > s.opt.GapInterval &&
		math.Abs(w[half].Time.Sub(t)) > s.opt.GapInterval {
		return sv, false, lookupError(ErrDataGapTooWide, sat, t)
	}
	if s.opt.CheckInterval && math.Abs(w[len(w)-1].Time.Sub(w[0].Time)) > s.opt.MaxInterval {
		return sv, false, lookupError(ErrIntervalTooWide, sat, t)
	}

	return interpolate(w, t, st.hasVel), false, nil
}

// Interpolate the window at t. Without velocity data the velocity and clock drift are the
// derivatives of the position and clock bias polynomials.
func interpolate(w []tableEntry, t GTime, hasVel bool) StateSample {
	n := len(w)
	t0 := w[0].Time
	dt := t.Sub(t0)
	times := make([]float64, n)
	var comp [8][]float64 // X, Y, Z, clock bias, VX, VY, VZ, clock drift
	for k := range comp {
		comp[k] = make([]float64, n)
	}
	for i := range w {
		times[i] = w[i].Time.Sub(t0)
		comp[0][i], comp[1][i], comp[2][i] = w[i].Pos[0], w[i].Pos[1], w[i].Pos[2]
		comp[3][i] = w[i].Clk
		comp[4][i], comp[5][i], comp[6][i] = w[i].Vel[0], w[i].Vel[1], w[i].Vel[2]
		comp[7][i] = w[i].Drift
	}

	e := tableEntry{Time: t}
	if hasVel {
		for k := 0; k < 3; k++ {
			e.Pos[k] = Lagrange(times, comp[k], dt)
			e.Vel[k] = Lagrange(times, comp[4+k], dt)
		}
		e.Clk = Lagrange(times, comp[3], dt)
		e.Drift = Lagrange(times, comp[7], dt)
	} else {
		var d [4]float64
		for k := 0; k < 3; k++ {
			e.Pos[k], d[k] = LagrangeDeriv(times, comp[k], dt)
			e.Vel[k] = d[k] * derivToDmps // km/s -> dm/s
		}
		e.Clk, d[3] = LagrangeDeriv(times, comp[3], dt)
		e.Drift = d[3] * derivToDmps // microsec/s -> 1e-4 microsec/s
	}
	return e.toSample()
}

// Dump writes a human readable description of the store
// - detail 0: number of satellites and time span
// - detail 1: plus number of samples per satellite
// - detail 2: plus every sample (source units)
func (s *Store) Dump(w io.Writer, detail int) error {
	fmt.Fprintf(w, "Dump of tabular ephemeris store:\n")
	fmt.Fprintf(w, " Data stored for %d satellites, over time span %s to %s.\n", len(s.sats), s.tmin, s.tmax)
	if detail <= 0 {
		return nil
	}
	for _, sat := range s.Satellites() {
		st := s.sats[sat]
		if detail == 1 {
			fmt.Fprintf(w, "  PRN %s : %d records.\n", sat, len(st.entries))
			continue
		}
		fmt.Fprintf(w, "  PRN %s : %d records.  Data:\n", sat, len(st.entries))
		for _, e := range st.entries {
			fmt.Fprintf(w, " %s (MJD %.8f) P %13.6f %13.6f %13.6f %13.6f V %13.6f %13.6f %13.6f %13.6f\n",
				e.Time, e.Time.MJD(),
				e.Pos[0], e.Pos[1], e.Pos[2], e.Clk,
				e.Vel[0], e.Vel[1], e.Vel[2], e.Drift)
		}
	}
	if s.prov != nil {
		_, err := s.prov.WriteTo(w)
		return err
	}
	return nil
}
