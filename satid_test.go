// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSatID(t *testing.T) {
	tests := []struct {
		in   string
		want SatType
	}{
		{"G01", "G01"},
		{"1", "G01"},
		{" 7", "G07"},
		{"G 5", "G05"},
		{"r12", "R12"},
		{"E30", "E30"},
		{"L03", "L03"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSatID(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSatIDErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "X01", "G", "Gxx", "G00", "G100"} {
		_, err := ParseSatID(in)
		assert.Error(t, err, "in=%q", in)
	}
}

func TestSatTypeParts(t *testing.T) {
	assert := assert.New(t)
	s := NewSatType('E', 3)
	assert.Equal(SatType("E03"), s)
	assert.Equal(SysType('E'), s.Sys())
	assert.Equal(3, s.Num())
	assert.Equal([]SatType{"G02", "G10", "E01", "R03"}, Sorted([]SatType{"R03", "G10", "E01", "G02"}))
}
