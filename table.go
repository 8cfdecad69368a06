// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Kind of an ephemeris record
type RecordKind int

const (
	PositionRecord RecordKind = iota // Position [km] and clock bias [microsec]
	VelocityRecord                   // Velocity [dm/s] and clock drift [1e-4 microsec/s]
)

func (k RecordKind) String() string {
	switch k {
	case PositionRecord:
		return "P"
	case VelocityRecord:
		return "V"
	default:
		return "?"
	}
}

// Record is one decoded ephemeris line as delivered by a file reader (SP3 units)
type Record struct {
	Sat  SatType
	Time GTime
	Kind RecordKind
	Vec  [3]float64 // km or dm/s
	Clk  float64    // microsec or 1e-4 microsec/s
}

// StateSample is the satellite state in SI units
type StateSample struct {
	Time     GTime
	Pos      PosXYZ  // ECEF position [m]
	Vel      PosXYZ  // ECEF velocity [m/s]
	ClkBias  float64 // Clock bias [s]
	ClkDrift float64 // Clock drift [s/s]
}

func (sv StateSample) String() string {
	return fmt.Sprintf("%s P %s %.12e V %s %.12e", sv.Time, sv.Pos.String(), sv.ClkBias, sv.Vel.String(), sv.ClkDrift)
}

// tableEntry keeps a table slot in source units
type tableEntry struct {
	Time  GTime
	Pos   [3]float64 // [km]
	Clk   float64    // [microsec]
	Vel   [3]float64 // [dm/s]
	Drift float64    // [1e-4 microsec/s]
}

// Convert a table slot to SI units. This is the only place the source units are scaled.
func (e *tableEntry) toSample() StateSample {
	return StateSample{
		Time:     e.Time,
		Pos:      PosXYZ{X: e.Pos[0] * kmToM, Y: e.Pos[1] * kmToM, Z: e.Pos[2] * kmToM},
		Vel:      PosXYZ{X: e.Vel[0] * dmpsToMps, Y: e.Vel[1] * dmpsToMps, Z: e.Vel[2] * dmpsToMps},
		ClkBias:  e.Clk * usToS,
		ClkDrift: e.Drift * driftToSps,
	}
}

// satTable is the time ordered series of one satellite
type satTable struct {
	entries []tableEntry
	hasVel  bool // At least one velocity record has been stored
}

func cmpEntryTime(e tableEntry, t GTime) int {
	return e.Time.Compare(t)
}

// Index of the first entry with time >= t, and whether it is at t
func (st *satTable) search(t GTime) (int, bool) {
	return slices.BinarySearchFunc(st.entries, t, cmpEntryTime)
}

// Slot at t, inserted in order when absent
func (st *satTable) slot(t GTime) *tableEntry {
	i, found := st.search(t)
	if !found {
		st.entries = slices.Insert(st.entries, i, tableEntry{Time: t})
	}
	return &st.entries[i]
}

func (st *satTable) put(t GTime, kind RecordKind, v [3]float64, clk float64) {
	e := st.slot(t)
	switch kind {
	case PositionRecord:
		e.Pos = v
		e.Clk = clk
	case VelocityRecord:
		e.Vel = v
		e.Drift = clk
		st.hasVel = true
	}
}

// Drop the entries outside [tmin, tmax]
func (st *satTable) trim(tmin, tmax GTime) int {
	n := len(st.entries)
	st.entries = slices.DeleteFunc(st.entries, func(e tableEntry) bool {
		return e.Time.Compare(tmin) < 0 || e.Time.Compare(tmax) > 0
	})
	return n - len(st.entries)
}

// window returns [lo, hi) of the 2*half entries used to interpolate at t:
// the half entries before the first entry at or after t, and half entries from there on.
func (st *satTable) window(t GTime, half int) (lo, hi int, err error) {
	i, _ := st.search(t)
	if i < half {
		return 0, 0, ErrInsufficientDataBefore
	}
	if len(st.entries)-i < half {
		return 0, 0, ErrInsufficientDataAfter
	}
	return i - half, i + half, nil
}
