// Package geom holds kerf's value types for points, vectors and unit
// directions in two and three dimensions, and the typed failures shared by
// every transform.
//
// Points and vectors are thin named types over the sdfx vectors; all
// arithmetic is delegated to github.com/deadsy/sdfx/vec/v2 and vec/v3.
// Conversions between points and vectors are one-directional functions:
// PointFromVector builds a point, Point.Vector returns its position vector.
package geom

import "github.com/chazu/kerf/pkg/scalar"

// Tol is the double precision tolerance used throughout the engine.
type Tol = scalar.Tolerance[float64]
