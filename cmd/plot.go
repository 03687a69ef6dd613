package cmd

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/lisasim/lisasim/sim"
	"github.com/lisasim/lisasim/sim/trace"
)

// savePlot draws travel time against reception time, one line per arm,
// and saves it to path. The format follows the file extension.
func savePlot(path string, gt *trace.GeometryTrace, arms []sim.Arm) error {
	if !gt.Enabled() {
		return fmt.Errorf("plotting needs a trace level of at least %s", trace.TraceLevelTravelTimes)
	}

	p := plot.New()
	p.Title.Text = "Light travel times"
	p.X.Label.Text = "Reception time (s)"
	p.Y.Label.Text = "Travel time (s)"

	for i, a := range arms {
		times, travel := gt.Series(int(a))
		if len(times) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(times))
		for j := range times {
			pts[j] = plotter.XY{X: times[j], Y: travel[j]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i / 3)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(armLabel(a), line)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot %s: %w", path, err)
	}
	return nil
}
