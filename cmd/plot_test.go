package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lisasim/lisasim/sim"
	"github.com/lisasim/lisasim/sim/trace"
)

func TestSavePlot_WritesPNG(t *testing.T) {
	// GIVEN a travel-time trace for two arms
	path := filepath.Join(t.TempDir(), "travel.png")

	// WHEN plotted
	require.NoError(t, savePlot(path, sampleTrace(), []sim.Arm{1, -2, 3}))

	// THEN a non-empty PNG exists
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestSavePlot_NeedsTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "travel.png")
	gt := trace.NewGeometryTrace(trace.TraceConfig{Level: trace.TraceLevelNone})

	assert.Error(t, savePlot(path, gt, sim.AllArms))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
