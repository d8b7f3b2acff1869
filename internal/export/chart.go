package export

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Chart size, in inches.
const (
	chartWidth  = 10
	chartHeight = 5
)

// RenderChart draws each account's balance over time as one line and saves the
// image to path. The format follows the file extension (.png, .svg, .pdf).
func RenderChart(path, title string, series []AccountHistory) error {
	if len(series) == 0 {
		return errors.New("chart needs at least one account")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Balance"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006"}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, h := range series {
		if len(h.Snapshots) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(h.Snapshots))
		for j, s := range h.Snapshots {
			pts[j].X = float64(s.Date.Time().Unix())
			pts[j].Y = s.Amount
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("account %q: %w", h.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(h.Name, line)
	}

	return p.Save(chartWidth*vg.Inch, chartHeight*vg.Inch, path)
}
