package crown

// Point is a position in Cartesian world coordinates (site frame).
// Candidate mode centroids and raw returns share this representation.
type Point struct {
	X, Y, Z float64 // World frame position (meters)
}

// Cylinder describes a right circular cylinder centred on a candidate
// crown position, extending Height/2 above and below Center.Z and
// Radius in the horizontal plane. It carries no state beyond its
// parameters and is used as the evaluation context for membership and
// weight queries.
type Cylinder struct {
	Radius float64
	Height float64
	Center Point
}

// Contains reports whether p falls inside the cylinder. Both the radial
// and the vertical test are inclusive at the boundary.
func (c Cylinder) Contains(p Point) bool {
	return InCylinder(p.X, p.Y, p.Z, c.Radius, c.Height, c.Center.X, c.Center.Y, c.Center.Z)
}

// Weight scores p against the cylinder centre: the product of the
// vertical Epanechnikov weight and the horizontal Gaussian weight, with
// the Gaussian width taken as the cylinder diameter. Returns outside
// the vertical support window score exactly zero.
func (c Cylinder) Weight(p Point) float64 {
	return EpanechnikovWeight(c.Height, c.Center.Z, p.Z) *
		GaussWeight(2*c.Radius, c.Center.X, c.Center.Y, p.X, p.Y)
}

// ClusteredMode is one candidate centroid annotated with the index of
// its cluster leader. ID indexes into the original input sequence.
type ClusteredMode struct {
	X, Y, Z float64
	ID      int
}
