// Package crown owns the numeric core of the canopy segmentation
// pipeline.
//
// Responsibilities: cylindrical neighbourhood tests, the vertical
// (Epanechnikov) and horizontal (Gaussian) kernel weights used to score
// point-cloud returns against a candidate crown centre, and the
// leader-rule clustering of candidate mode centroids.
// Key types: Point, Cylinder, ClusteredMode.
//
// Everything in this package is pure computation over float64
// coordinates. No SQL/database code is allowed in this package.
package crown
