package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Geometry model names accepted in a ConstellationSpec.
const (
	ModelStatic    = "static"
	ModelSagnac    = "sagnac"
	ModelCircular  = "circular"
	ModelEccentric = "eccentric"
)

var validModels = map[string]bool{
	ModelStatic: true, ModelSagnac: true, ModelCircular: true, ModelEccentric: true,
}

// ConstellationSpec is the top-level constellation configuration.
// Loaded from YAML via LoadConstellationSpec(path).
type ConstellationSpec struct {
	Seed     int64        `yaml:"seed"`
	Geometry GeometrySpec `yaml:"geometry"`
	Noise    *NoiseConfig `yaml:"noise,omitempty"`
}

// GeometrySpec selects and parameterizes a geometry model.
type GeometrySpec struct {
	Model string `yaml:"model"`

	// static, sagnac: the three link lengths (s).
	Arms []float64 `yaml:"arms,omitempty"`

	// circular, eccentric: nominal arm length and orbital radius (s);
	// zero selects Lstd and Rgc.
	ArmLength float64 `yaml:"arm_length,omitempty"`
	Radius    float64 `yaml:"radius,omitempty"`

	// circular: orbital and orientation phases, and the 2<->3 exchange.
	Eta0   float64 `yaml:"eta0,omitempty"`
	Xi0    float64 `yaml:"xi0,omitempty"`
	Mirror bool    `yaml:"mirror,omitempty"`

	// eccentric: initial guiding-center azimuth and craft orientation.
	Kappa  float64 `yaml:"kappa,omitempty"`
	Lambda float64 `yaml:"lambda,omitempty"`
}

// NewGeometryFunc builds a Geometry from a GeometrySpec.
// Registered by sim/orbit's init(); nil until that package is imported.
var NewGeometryFunc func(spec GeometrySpec) (Geometry, error)

// LoadConstellationSpec reads and parses a YAML constellation spec.
// Unknown keys are rejected.
func LoadConstellationSpec(path string) (*ConstellationSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading constellation spec: %w", err)
	}
	return ParseConstellationSpec(data)
}

// ParseConstellationSpec parses a YAML constellation spec from memory.
func ParseConstellationSpec(data []byte) (*ConstellationSpec, error) {
	var spec ConstellationSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing constellation spec: %w", err)
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
func (s *ConstellationSpec) Validate() error {
	if err := s.Geometry.Validate(); err != nil {
		return err
	}
	if s.Noise != nil {
		if err := s.Noise.Validate(); err != nil {
			return fmt.Errorf("noise: %w", err)
		}
	}
	return nil
}

// Validate checks the model name and the parameters it uses.
func (g *GeometrySpec) Validate() error {
	if !validModels[g.Model] {
		return fmt.Errorf("unknown geometry model %q; valid: static, sagnac, circular, eccentric", g.Model)
	}
	switch g.Model {
	case ModelStatic, ModelSagnac:
		if len(g.Arms) != 3 {
			return fmt.Errorf("model %q needs exactly 3 arm lengths, got %d", g.Model, len(g.Arms))
		}
		for i, l := range g.Arms {
			if !(l > 0) || math.IsInf(l, 0) {
				return fmt.Errorf("arm %d length must be finite and positive, got %v", i+1, l)
			}
		}
	default:
		if len(g.Arms) != 0 {
			return fmt.Errorf("model %q takes arm_length, not arms", g.Model)
		}
		if g.ArmLength < 0 || math.IsNaN(g.ArmLength) {
			return fmt.Errorf("arm_length must be non-negative, got %v", g.ArmLength)
		}
		if g.Radius < 0 || math.IsNaN(g.Radius) {
			return fmt.Errorf("radius must be non-negative, got %v", g.Radius)
		}
	}
	return nil
}

// NewConstellation validates spec and builds its geometry, wrapped in a
// NoisyGeometry when a noise block is present.
// Panics if no geometry factory is registered (sim/orbit not imported).
func NewConstellation(spec *ConstellationSpec) (Geometry, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if NewGeometryFunc == nil {
		panic("sim: NewGeometryFunc is nil; import github.com/lisasim/lisasim/sim/orbit")
	}
	g, err := NewGeometryFunc(spec.Geometry)
	if err != nil {
		return nil, fmt.Errorf("building %s geometry: %w", spec.Geometry.Model, err)
	}
	if spec.Noise == nil {
		return g, nil
	}
	return NewNoisyGeometry(g, *spec.Noise, NewPartitionedRNG(NewSimulationKey(spec.Seed)))
}
