package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/navigatorx-ch/pkg/contractor"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, contractor.DefaultHeuristics(), cfg.Contraction.ToHeuristics())
}

func TestReadConfig(t *testing.T) {
	data := `
contraction:
  hop-limit: 3
  priority: experimental
  heuristics:
    hub: 40
store:
  backend: pebble
  path: /tmp/orders
log:
  level: debug
  development: true
`
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(data), 0o644))

	cfg, err := ReadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, int32(3), cfg.Contraction.HopLimit)
	assert.Equal(t, "experimental", cfg.Contraction.Priority)
	assert.Equal(t, int64(40), cfg.Contraction.Heuristics.Hub)
	// untouched keys keep their defaults
	assert.Equal(t, int64(190), cfg.Contraction.Heuristics.EdgeDiff)
	assert.Equal(t, BackendPebble, cfg.Store.Backend)
	assert.Equal(t, "/tmp/orders", cfg.Store.Path)
	assert.True(t, cfg.Log.Development)

	opts, err := cfg.Contraction.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	logger, err := NewLogger(cfg.Log)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, util.ErrConfig, util.CodeOf(err))
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name string
		data string
		msg  string
	}{
		{"hop limit", "contraction:\n  hop-limit: 0\n", "HopLimit"},
		{"priority", "contraction:\n  priority: random\n", "Priority"},
		{"backend", "store:\n  backend: sqlite\n", "Backend"},
		{"negative weight", "contraction:\n  heuristics:\n    deleted-neighbors: -1\n", "Deleted"},
		{"log level", "log:\n  level: loud\n", "Level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, util.ErrInvalidConfig))
			assert.Equal(t, util.ErrConfig, util.CodeOf(err))
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestParseMalformedYaml(t *testing.T) {
	_, err := Parse([]byte("contraction: [1, 2"))
	require.Error(t, err)
	assert.Equal(t, util.ErrConfig, util.CodeOf(err))
	assert.False(t, errors.Is(err, util.ErrInvalidConfig))
}
