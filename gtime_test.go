// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGTimeAddSubAcrossWeek(t *testing.T) {
	assert := assert.New(t)
	a := NewGTimeWS(2300, 604790)
	b := a.Add(20)
	assert.Equal(2301, b.Week)
	assert.InDelta(10, b.Sec, 1e-9)
	assert.InDelta(20, b.Sub(a), 1e-9)

	c := NewGTimeWS(2300, -10)
	assert.Equal(2299, c.Week)
	assert.InDelta(604790, c.Sec, 1e-9)
}

func TestGTimeCompare(t *testing.T) {
	assert := assert.New(t)
	a := NewGTimeWS(2300, 100)
	assert.Equal(0, a.Compare(a.Add(1e-10)))
	assert.Equal(-1, a.Compare(a.Add(1e-6)))
	assert.Equal(1, a.Compare(a.Add(-1e-6)))
	assert.True(a.Equal(NewGTimeWS(2299, 604900)))
}

func TestGTimeSentinels(t *testing.T) {
	assert := assert.New(t)
	a := NewGTimeWS(2300, 100)
	assert.Equal(-1, BeginningOfTime().Compare(a))
	assert.Equal(1, EndOfTime().Compare(a))
	assert.Equal(1, EndOfTime().Compare(BeginningOfTime()))
	assert.True(EndOfTime().Add(100).Equal(EndOfTime()))
	assert.True(BeginningOfTime().IsSentinel())
	assert.False(a.IsSentinel())
	assert.Equal("END_OF_TIME", EndOfTime().String())
	assert.Equal("BEGINNING_OF_TIME", BeginningOfTime().String())
}

func TestGTimeConversions(t *testing.T) {
	assert := assert.New(t)
	dt := time.Date(2024, 3, 1, 6, 0, 30, 500000000, time.UTC)
	g := NewGTime(dt)
	assert.True(dt.Equal(g.ToTime()))
	assert.Equal("2024/03/01 06:00:30.500", g.String())

	year, doy, sod := g.YDS()
	assert.Equal(2024, year)
	assert.Equal(61, doy)
	assert.InDelta(6*3600+30.5, sod, 1e-6)

	epoch := NewGTimeWS(0, 0)
	assert.InDelta(44244.0, epoch.MJD(), 1e-9)
	assert.InDelta(2444244.5, epoch.JD(), 1e-9)
}
