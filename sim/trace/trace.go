package trace

// TraceLevel controls how much of the geometry is recorded per sample.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTravelTimes records travel times only.
	TraceLevelTravelTimes TraceLevel = "travel_times"
	// TraceLevelFull adds lines of sight and craft positions.
	TraceLevelFull TraceLevel = "full"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelTravelTimes: true,
	TraceLevelFull:        true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// GeometryTrace collects sample records over a time grid.
type GeometryTrace struct {
	Config    TraceConfig
	Samples   []SampleRecord
	Positions []PositionRecord
}

// NewGeometryTrace creates a GeometryTrace ready for recording.
func NewGeometryTrace(config TraceConfig) *GeometryTrace {
	return &GeometryTrace{
		Config:    config,
		Samples:   make([]SampleRecord, 0),
		Positions: make([]PositionRecord, 0),
	}
}

// Enabled reports whether anything is recorded at all.
func (gt *GeometryTrace) Enabled() bool {
	return gt != nil && gt.Config.Level != TraceLevelNone && gt.Config.Level != ""
}

// Full reports whether lines of sight and positions are recorded.
func (gt *GeometryTrace) Full() bool {
	return gt != nil && gt.Config.Level == TraceLevelFull
}

// RecordSample appends an arm sample record.
func (gt *GeometryTrace) RecordSample(record SampleRecord) {
	gt.Samples = append(gt.Samples, record)
}

// RecordPosition appends a craft position record.
func (gt *GeometryTrace) RecordPosition(record PositionRecord) {
	gt.Positions = append(gt.Positions, record)
}

// Series returns the times and travel times recorded for arm, in recording
// order.
func (gt *GeometryTrace) Series(arm int) (times, travel []float64) {
	for _, s := range gt.Samples {
		if s.Arm == arm {
			times = append(times, s.Time)
			travel = append(travel, s.TravelTime)
		}
	}
	return times, travel
}
