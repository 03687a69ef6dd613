// register.go wires sim/orbit constructors into the sim package's registration
// variable (NewGeometryFunc). This init() runs when any package imports
// sim/orbit, breaking the import cycle between sim/ (interface owner) and
// sim/orbit/ (implementation). Test code in package sim uses
// orbit_import_test.go for the blank import.
package orbit

import (
	"fmt"

	"github.com/lisasim/lisasim/sim"
)

func init() {
	sim.NewGeometryFunc = NewGeometry
}

// NewGeometry builds the geometry model named by spec.Model.
func NewGeometry(spec sim.GeometrySpec) (sim.Geometry, error) {
	var (
		g   sim.Geometry
		err error
	)
	switch spec.Model {
	case sim.ModelStatic, sim.ModelSagnac:
		if len(spec.Arms) != 3 {
			return nil, fmt.Errorf("model %q needs exactly 3 arm lengths, got %d", spec.Model, len(spec.Arms))
		}
		l1, l2, l3 := spec.Arms[0], spec.Arms[1], spec.Arms[2]
		if spec.Model == sim.ModelStatic {
			g, err = NewStaticTriangle(l1, l2, l3)
		} else {
			g, err = NewSagnacTriangle(l1, l2, l3)
		}
	case sim.ModelCircular:
		g, err = NewCircularRotating(CircularConfig{
			ArmLength: spec.ArmLength,
			Radius:    spec.Radius,
			Eta0:      spec.Eta0,
			Xi0:       spec.Xi0,
			Mirror:    spec.Mirror,
		})
	case sim.ModelEccentric:
		g, err = NewEccentricOrbit(EccentricConfig{
			ArmLength: spec.ArmLength,
			Radius:    spec.Radius,
			Kappa:     spec.Kappa,
			Lambda:    spec.Lambda,
		})
	default:
		return nil, fmt.Errorf("unknown geometry model %q; valid: static, sagnac, circular, eccentric", spec.Model)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}
