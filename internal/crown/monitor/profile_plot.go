package monitor

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/canopy.report/internal/crown"
)

// profileSamples is the number of points sampled along each kernel axis.
const profileSamples = 400

// PlotKernelProfiles renders the vertical Epanechnikov profile and the
// horizontal Gaussian falloff for the given crown geometry as PNG files
// in outputDir. Useful when tuning radius/height/width parameters
// against a reference stand.
//
// Returns the paths of the written files.
func PlotKernelProfiles(outputDir string, radius, height, width float64) ([]string, error) {
	ctrZ := height / 2 // plot the crown sitting on the ground

	vertical := plot.New()
	vertical.Title.Text = fmt.Sprintf("Vertical Kernel Profile (h=%.1fm)", height)
	vertical.X.Label.Text = "Z (m)"
	vertical.Y.Label.Text = "Weight"

	// Sample a span wider than the support window so the hard cutoff
	// is visible in the plot.
	zLo := ctrZ - height
	zHi := ctrZ + height
	vPts := make(plotter.XYs, profileSamples)
	for i := range vPts {
		z := zLo + (zHi-zLo)*float64(i)/float64(profileSamples-1)
		vPts[i].X = z
		vPts[i].Y = crown.EpanechnikovWeight(height, ctrZ, z)
	}

	vLine, err := plotter.NewLine(vPts)
	if err != nil {
		return nil, fmt.Errorf("failed to build vertical profile line: %w", err)
	}
	vLine.Width = vg.Points(1)
	vertical.Add(vLine)

	horizontal := plot.New()
	horizontal.Title.Text = fmt.Sprintf("Horizontal Kernel Falloff (w=%.1fm)", width)
	horizontal.X.Label.Text = "Planar distance (m)"
	horizontal.Y.Label.Text = "Weight"

	hPts := make(plotter.XYs, profileSamples)
	for i := range hPts {
		d := 2 * radius * float64(i) / float64(profileSamples-1)
		hPts[i].X = d
		hPts[i].Y = crown.GaussWeight(width, 0, 0, d, 0)
	}

	hLine, err := plotter.NewLine(hPts)
	if err != nil {
		return nil, fmt.Errorf("failed to build horizontal falloff line: %w", err)
	}
	hLine.Width = vg.Points(1)
	horizontal.Add(hLine)

	vFile := filepath.Join(outputDir, "kernel_vertical_profile.png")
	if err := vertical.Save(8*vg.Inch, 5*vg.Inch, vFile); err != nil {
		return nil, fmt.Errorf("failed to save vertical profile: %w", err)
	}
	hFile := filepath.Join(outputDir, "kernel_horizontal_falloff.png")
	if err := horizontal.Save(8*vg.Inch, 5*vg.Inch, hFile); err != nil {
		return nil, fmt.Errorf("failed to save horizontal falloff: %w", err)
	}

	return []string{vFile, hFile}, nil
}
