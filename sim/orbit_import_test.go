package sim_test

// Blank import triggers sim/orbit's init(), which registers NewGeometryFunc.
// This allows package sim's internal test files to build constellations
// without directly importing sim/orbit (which would create an import cycle).
import _ "github.com/lisasim/lisasim/sim/orbit"
