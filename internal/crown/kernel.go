package crown

import "math"

// InCylinder reports whether the point (px, py, pz) lies within a
// cylinder of the given radius and height centred at (cx, cy, cz).
// The vertical extent is [cz-height/2, cz+height/2]; both the radial
// and the vertical comparison are inclusive.
func InCylinder(px, py, pz, radius, height, cx, cy, cz float64) bool {
	dx := px - cx
	dy := py - cy
	return dx*dx+dy*dy <= radius*radius &&
		pz >= cz-0.5*height &&
		pz <= cz+0.5*height
}

// VerticalDistance returns the normalized distance from pointZ to the
// nearer of two reference planes: a bottom plane at ctrZ-height/4 and a
// top plane at ctrZ+height/2, both normalized by 3*height/8. This is a
// shape parameter for the vertical kernel, not a physical distance, and
// can exceed 1. A zero height yields IEEE division results (NaN) which
// propagate unmodified.
func VerticalDistance(height, ctrZ, pointZ float64) float64 {
	bottom := math.Abs((ctrZ - height/4 - pointZ) / (3 * height / 8))
	top := math.Abs((ctrZ + height/2 - pointZ) / (3 * height / 8))
	return math.Min(bottom, top)
}

// EpanechnikovWeight is the vertical kernel: zero outside the support
// window [ctrZ-height/4, ctrZ+height/2] (hard cutoff), and inside it
// 1 - (1 - VerticalDistance)^2. The window is deliberately asymmetric
// around ctrZ, modelling a crown profile with a compact base and a
// fuller top. The peak value 1 sits at pointZ = ctrZ + height/8, where
// both reference planes are equidistant.
//
// The formula is not clamped: for VerticalDistance > 2 the weight goes
// negative. That range is preserved as-is rather than truncated.
func EpanechnikovWeight(height, ctrZ, pointZ float64) float64 {
	if pointZ >= ctrZ-height/4 && pointZ <= ctrZ+height/2 {
		d := 1 - VerticalDistance(height, ctrZ, pointZ)
		return 1 - d*d
	}
	return 0
}

// GaussWeight is the horizontal kernel: a Gaussian falloff in planar
// distance from the centre, normalized by width/2, so a point one
// half-width away scores exp(-5). Always positive, never hard-zero.
func GaussWeight(width, ctrX, ctrY, pointX, pointY float64) float64 {
	dx := pointX - ctrX
	dy := pointY - ctrY
	distance := math.Sqrt(dx*dx + dy*dy)
	norm := distance / (width / 2)
	return math.Exp(-5 * norm * norm)
}
