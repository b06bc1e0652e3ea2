// Package xform implements kerf's elementary transform operations and the
// matrix-composition fast path.
//
// The elementary operations (Translate, Rotate, Scale, Reflect and their
// vector and 2D variants) are pure functions over finite input. Each one
// validates its arguments before computing and its result after, and
// reports failures as *geom.Error values wrapping one of the geom.Err*
// kinds.
//
// The fast path (Affine, Affine2, Chain) folds a sequence of operations
// into one homogeneous matrix from github.com/go-gl/mathgl/mgl64. Every
// matrix builder is derived from the elementary operations: it evaluates
// the safe operation on the origin and the basis vectors and assembles the
// matrix from their images, so the two paths cannot drift apart.
package xform
