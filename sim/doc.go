// Package sim provides the constellation geometry core: signed arm and craft
// indexing, the Geometry capability interface, the retarded travel-time
// solver, the noise-perturbed decorator and the YAML constellation spec.
//
// # Reading Guide
//
// Start with these files:
//   - geometry.go: Craft/Arm indexing, Geometry and its optional capabilities
//   - solver.go: bisection on the null interval, GenericLineOfSight
//   - noisy.go: NoisyGeometry, six seeded travel-time noise processes
//
// # Architecture
//
// The sim package defines interfaces and bridge types; implementations live in
// sub-packages:
//   - sim/orbit/: static, Sagnac-corrected, rigid rotating and eccentric orbits
//   - sim/noise/: discrete noise synthesis and continuous-time interpolation
//   - sim/trace/: sampled geometry records and their summary
//   - sim/telemetry/: Prometheus collectors for noise and solver activity
//
// sim/orbit registers its factory via init(), setting the package-level
// variable NewGeometryFunc used by NewConstellation.
//
// # Units
//
// Times and lengths are both in seconds: light speed is 1. A query time t is
// a reception time; travel times look back from it.
package sim
