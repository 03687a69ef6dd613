package sim

import "math"

// Physical constants in seconds (light speed normalized to 1).
const (
	// YearSeconds is the sidereal year.
	YearSeconds = 3.15581498e7

	// Omega is the orbital angular rate of the constellation (rad/s).
	Omega = 2.0 * math.Pi / YearSeconds

	// Rgc is the guiding-center orbital radius: 1 AU in light-seconds.
	Rgc = 499.004783836

	// Lstd is the nominal arm length: 5e9 m in light-seconds.
	Lstd = 16.6782047599
)

// DelayModulationConstant scales the fitted travel-time modulation of the
// rigid rotating constellation, amp = DelayModulationConstant·R·scriptl²·Omega.
// With scriptl = Lstd/√3 the amplitude is (√3/2)·Lstd·Rgc·Omega: the
// first-order delay excursion from the emitter's orbital velocity projected on
// an arm tilted by π/6 out of the orbital plane.
const DelayModulationConstant = 2.598076211353316 / Lstd // 3√3/2 / Lstd

// DelayModulationPhase is the common phase of the fitted modulation relative
// to the orientation phase xi0.
const DelayModulationPhase = math.Pi / 2
