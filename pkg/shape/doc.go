// Package shape defines kerf's parametric primitives and their transform
// adapters.
//
// Every primitive is an immutable value. Transforms return a new value or
// a *geom.Error and never touch the receiver. Each 3D primitive offers the
// same six operations:
//
//	Translate(v, tol)
//	Rotate(axisPoint, axis, angle, tol)
//	Scale(center, f, tol)
//	ScaleXYZ(center, fx, fy, fz, tol)
//	Reflect(planePoint, planeNormal, tol)
//	Transform(a xform.Affine, tol)
//
// The first five run the elementary operations of package xform; Transform
// applies a composed matrix once. Either way the primitive's own
// quantities (radius, axes, angles) are re-derived from the mapped
// geometry and re-validated. Planar primitives mirror the set with 2D
// arguments and xform.Affine2.
//
// The set of kinds is closed: Shape carries an unexported method, and
// Transform and Transform2 dispatch over the concrete types.
package shape
