// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMissingData(t *testing.T) {
	assert := assert.New(t)
	for _, kind := range []error{ErrNotFound, ErrInsufficientDataBefore, ErrInsufficientDataAfter, ErrDataGapTooWide, ErrIntervalTooWide} {
		err := fmt.Errorf("wrapped: %w", lookupError(kind, "G01", epoch(0)))
		assert.True(IsMissingData(err), kind.Error())
		assert.ErrorIs(err, kind)
	}
	assert.False(IsMissingData(errors.New("boom")))
	assert.False(IsMissingData(nil))
	assert.Equal("ok", errorKind(nil))
}

func TestLookupErrorMessage(t *testing.T) {
	err := lookupError(ErrDataGapTooWide, "R05", epoch(0))
	assert.Contains(t, err.Error(), "data gap too wide")
	assert.Contains(t, err.Error(), "sat=R05")
}

func TestSatVar(t *testing.T) {
	assert := assert.New(t)
	var v SatVar
	assert.NoError(v.Set("G01,7,r03"))
	assert.Equal(SatVar{"G01", "G07", "R03"}, v)
	assert.Equal("G01,G07,R03", v.String())
	assert.Error(v.Set("G01,X9"))
}

func TestMode(t *testing.T) {
	assert := assert.New(t)
	var m Mode
	assert.NoError(m.Set("2"))
	assert.Equal(AtTransmitSvTime, m)
	assert.Equal("TRANSMIT_SV", m.String())
	assert.Error(m.Set("3"))
	assert.Error(m.Set("x"))
}

func TestLoggerLevels(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	s := NewStore(&StoreOpt{Half: 5, Logger: NewLogger(&buf, ParseLevel(2))})
	_, err := s.GetState("G01", epoch(0))
	assert.Error(err)
	assert.Contains(buf.String(), "ephemeris lookup failed")
	assert.Contains(buf.String(), "reason=not_found")

	buf.Reset()
	s = NewStore(&StoreOpt{Half: 5, Logger: NewLogger(&buf, ParseLevel(0))})
	_, _ = s.GetState("G01", epoch(0))
	s.Clear()
	assert.Empty(buf.String())
	assert.Equal(slog.LevelInfo, ParseLevel(1))
}
