// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	so := cfg.StoreOpt()
	assert.Equal(t, NewStoreOpt(), so)
	ro := cfg.RangeOpt()
	assert.Equal(t, NewRangeOpt(), ro)
}

func TestParseConfigOverrides(t *testing.T) {
	assert := assert.New(t)
	cfg, err := ParseConfig([]byte(`
store:
  check_data_gap: true
  gap_interval: 300
  track_provenance: true
range:
  max_iter: 8
`))
	require.NoError(t, err)
	assert.Equal(5, cfg.Store.Half)
	assert.True(cfg.Store.CheckDataGap)
	assert.Equal(300.0, cfg.Store.GapInterval)
	assert.False(cfg.Store.CheckInterval)
	assert.Equal(8105.0, cfg.Store.MaxInterval)
	assert.Equal(8, cfg.Range.MaxIter)
	assert.Equal(2, cfg.Range.TransmitIter)
	assert.Equal(0.07, cfg.Range.InitialTOF)

	so := cfg.StoreOpt()
	assert.True(so.CheckDataGap)
	assert.True(so.TrackProvenance)
	s := NewStore(so)
	assert.NotNil(s.Provenance())
}

func TestParseConfigInvalid(t *testing.T) {
	for _, in := range []string{
		"store:\n  half: 0\n",
		"store:\n  check_data_gap: true\n  gap_interval: -1\n",
		"store:\n  check_interval: true\n  max_interval: 0\n",
		"range:\n  max_iter: 0\n",
		"range:\n  transmit_iter: 0\n",
		"range:\n  tof_tolerance: -1e-9\n",
		"store: [1, 2\n",
	} {
		_, err := ParseConfig([]byte(in))
		assert.Error(t, err, "in=%q", in)
	}
}

func TestLoadConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "tabeph.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("store:\n  half: 4\n"), 0o644))
	cfg, err := LoadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Store.Half)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
