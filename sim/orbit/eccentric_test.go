package orbit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lisasim/lisasim/sim"
	"github.com/lisasim/lisasim/sim/internal/testutil"
)

func TestEccentricOrbit_Eccentricity(t *testing.T) {
	e, err := NewEccentricOrbit(EccentricConfig{})
	require.NoError(t, err)
	// 5e9 m arms at 1 AU
	assert.InDelta(t, 0.00964837, e.Eccentricity(), 1e-7)
}

func TestEccentricOrbit_ArmsStayNearNominal(t *testing.T) {
	// GIVEN the default eccentric constellation sampled over one year
	e, err := NewEccentricOrbit(EccentricConfig{Kappa: 0.3, Lambda: 1.2})
	require.NoError(t, err)

	for k := 0; k < 48; k++ {
		tm := float64(k) * sim.YearSeconds / 48
		for _, a := range sim.AllArms {
			// WHEN solving the travel time
			d, err := e.TravelTime(a, tm)
			require.NoError(t, err)
			// THEN the arm flexes by well under 1%
			assert.InEpsilon(t, sim.Lstd, d, 0.01, "arm %d t=%v", a, tm)
			assert.Less(t, d, e.MaxTravelTime())
		}
	}
}

func TestEccentricOrbit_CentroidNearGuidingCenter(t *testing.T) {
	e, err := NewEccentricOrbit(EccentricConfig{})
	require.NoError(t, err)

	for k := 0; k < 12; k++ {
		tm := float64(k) * sim.YearSeconds / 12
		sum := r3.Add(r3.Add(e.Position(1, tm), e.Position(2, tm)), e.Position(3, tm))
		want := r3.Vec{X: sim.Rgc * math.Cos(sim.Omega*tm), Y: sim.Rgc * math.Sin(sim.Omega*tm)}
		// second-order terms displace the centroid by O(R·ecc²)
		testutil.AssertVecNear(t, "centroid", want, r3.Scale(1.0/3.0, sum), 0.2)
	}
}

func TestEccentricOrbit_PositionCacheIsPerCraft(t *testing.T) {
	e, err := NewEccentricOrbit(EccentricConfig{})
	require.NoError(t, err)
	fresh, err := NewEccentricOrbit(EccentricConfig{})
	require.NoError(t, err)

	// Interleave crafts and times; the cache must never serve a stale time.
	e.Position(1, 100)
	e.Position(2, 200)
	assert.Equal(t, fresh.position(1, 200), e.Position(1, 200))
	assert.Equal(t, fresh.position(2, 200), e.Position(2, 200))
	assert.Equal(t, fresh.position(1, 100), e.Position(1, 100))
}

func TestEccentricOrbit_LineOfSight(t *testing.T) {
	e, err := NewEccentricOrbit(EccentricConfig{Lambda: 0.7})
	require.NoError(t, err)

	for _, a := range sim.AllArms {
		n, err := e.LineOfSight(a, 2e6)
		require.NoError(t, err)
		testutil.AssertUnit(t, "line of sight", n, 1e-14)

		rev, err := e.LineOfSight(a.Reverse(), 2e6)
		require.NoError(t, err)
		// opposite directions up to aberration
		assert.InDelta(t, -1, r3.Dot(n, rev), 1e-6)
	}
}

func TestNewEccentricOrbit_InvalidConfig(t *testing.T) {
	for _, cfg := range []EccentricConfig{
		{ArmLength: -1},
		{Radius: -2},
		{ArmLength: 600},
	} {
		_, err := NewEccentricOrbit(cfg)
		assert.Error(t, err, "%+v", cfg)
	}
}
