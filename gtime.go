// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// GTime is GPS time as week number and seconds of week
type GTime struct {
	Week int
	Sec  float64
}

// GPS time starts from 1980/1/6 00:00:00
var gpsEpoch = time.Date(1980, 1, 6, 0, 0, 0, 0, time.UTC)

const (
	beginWeek = math.MinInt32
	endWeek   = math.MaxInt32
)

func NewGTime(dt time.Time) *GTime {
	t := dt.Unix()
	t -= gpsEpoch.Unix() // Elapsed seconds since 1980/1/6 00:00:00
	return &GTime{
		Week: int(t / (3600 * 24 * 7)),
		Sec:  float64(t%(3600*24*7)) + float64(dt.Nanosecond())/1000000000,
	}
}

// NewGTimeWS builds a GTime from week and seconds, carrying seconds outside [0, 604800) into the week
func NewGTimeWS(week int, sec float64) GTime {
	w := math.Floor(sec / SecondsPerWeek)
	return GTime{Week: week + int(w), Sec: sec - w*SecondsPerWeek}
}

// BeginningOfTime sorts before every real epoch
func BeginningOfTime() GTime {
	return GTime{Week: beginWeek}
}

// EndOfTime sorts after every real epoch
func EndOfTime() GTime {
	return GTime{Week: endWeek}
}

func (p *GTime) ToTime() time.Time {
	o := gpsEpoch.Unix()
	i := int64(math.Trunc(p.Sec))
	t := int64(3600*24*7*p.Week) + i + o
	n := int64((p.Sec - float64(i)) * 1e9)
	return time.Unix(t, n) // Unix time is the elapsed seconds since 1970/1/1 00:00:00
}

// Sub returns p - b in seconds
func (p GTime) Sub(b GTime) float64 {
	return float64(p.Week-b.Week)*SecondsPerWeek + (p.Sec - b.Sec)
}

// Add returns p shifted by sec seconds
func (p GTime) Add(sec float64) GTime {
	if p.IsSentinel() {
		return p
	}
	return NewGTimeWS(p.Week, p.Sec+sec)
}

// Compare orders two epochs, treating differences below timeTolerance as equal
func (p GTime) Compare(b GTime) int {
	d := p.Sub(b)
	switch {
	case d < -timeTolerance:
		return -1
	case d > timeTolerance:
		return 1
	default:
		return 0
	}
}

func (p GTime) Equal(b GTime) bool {
	return p.Compare(b) == 0
}

func (p GTime) IsSentinel() bool {
	return p.Week == beginWeek || p.Week == endWeek
}

// YDS returns year, day of year and seconds of day
func (p GTime) YDS() (year, doy int, sod float64) {
	t := p.ToTime().UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return t.Year(), t.YearDay(), t.Sub(midnight).Seconds()
}

// JD returns the Julian date of the epoch (GPS time scale, no leap second handling)
func (p GTime) JD() float64 {
	return julian.TimeToJD(p.ToTime().UTC())
}

// MJD returns the modified Julian date
func (p GTime) MJD() float64 {
	return p.JD() - 2400000.5
}

func (p GTime) String() string {
	switch p.Week {
	case beginWeek:
		return "BEGINNING_OF_TIME"
	case endWeek:
		return "END_OF_TIME"
	}
	return p.ToTime().UTC().Format("2006/01/02 15:04:05.000")
}
