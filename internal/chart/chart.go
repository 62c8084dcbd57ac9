package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"ballistic-calculator/internal/solver"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	arcColor    = color.RGBA{0, 0, 255, 255}
	targetColor = color.RGBA{255, 0, 0, 255}
	groundColor = color.RGBA{0, 0, 0, 255}
)

var ErrNoSolution = errors.New("chart: no solution to plot")

// New builds the trajectory plot: the sampled arc, the target point at the
// solved distance and entered target height, and a dashed ground line at 0.
func New(sol *solver.TrajectorySolution) (*plot.Plot, error) {
	if sol == nil || len(sol.Curve) == 0 {
		return nil, ErrNoSolution
	}

	p := plot.New()
	p.Title.Text = "Trajectory"
	p.X.Label.Text = "Flying distance (m)"
	p.Y.Label.Text = "Altitude (m)"
	p.X.Min = 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(sol.Curve))
	for i, s := range sol.Curve {
		pts[i].X = s.Distance
		pts[i].Y = s.Height
	}

	arc, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("arc line: %w", err)
	}
	arc.Color = arcColor
	arc.Width = vg.Points(1.5)

	target, err := plotter.NewScatter(plotter.XYs{{X: sol.Distance, Y: sol.TargetHeight}})
	if err != nil {
		return nil, fmt.Errorf("target point: %w", err)
	}
	target.GlyphStyle.Color = targetColor
	target.GlyphStyle.Shape = draw.CircleGlyph{}
	target.GlyphStyle.Radius = vg.Points(4)

	ground := plotter.NewFunction(func(float64) float64 { return 0 })
	ground.Color = groundColor
	ground.Width = vg.Points(0.5)
	ground.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(arc, ground, target)
	p.Legend.Add("Projectile Trajectory", arc)
	p.Legend.Add("Target", target)

	return p, nil
}

// WritePNG renders the plot for sol as a PNG of the given size.
func WritePNG(w io.Writer, sol *solver.TrajectorySolution, width, height vg.Length) error {
	p, err := New(sol)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("png canvas: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// Render returns the plot as an image, ready to be uploaded to a window texture.
func Render(sol *solver.TrajectorySolution, width, height vg.Length) (image.Image, error) {
	buf := new(bytes.Buffer)
	if err := WritePNG(buf, sol, width, height); err != nil {
		return nil, err
	}
	img, err := png.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}

func Save(sol *solver.TrajectorySolution, path string, width, height vg.Length) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, sol, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
