// Package sqlite persists segmentation runs and their clustered modes.
//
// A run records one invocation of the mode clustering pass: the source
// the centroids came from, the epsilon used, and one row per mode with
// its leader assignment. Stores operate on a *sql.DB opened by the
// internal/db package.
package sqlite
