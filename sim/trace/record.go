// Package trace records sampled constellation geometry for offline analysis.
// It stores plain data types and does not import sim.
package trace

// SampleRecord captures one arm evaluated at one reception time.
type SampleRecord struct {
	Time        float64     `yaml:"time"`
	Arm         int         `yaml:"arm"`
	TravelTime  float64     `yaml:"travel_time"`
	LineOfSight *[3]float64 `yaml:"line_of_sight,omitempty"` // nil below TraceLevelFull
}

// PositionRecord captures one craft position at one time.
type PositionRecord struct {
	Time     float64    `yaml:"time"`
	Craft    int        `yaml:"craft"`
	Position [3]float64 `yaml:"position"`
}
