// Package fillet computes a rounded-corner replacement for a single polyline
// vertex that sits between exactly two straight segments.
//
// The computation is a chain of pure stages:
//
//	Resolve  -> finds the selected vertex and its two neighbors
//	Bound    -> maximum radius (the shorter adjacent edge)
//	Solve    -> the two cut points and the arc center
//	Sample   -> the discretized curve (Bezier or exact arc)
//
// Compute runs the whole chain. Nothing in this package retains state between
// calls, so concurrent use with distinct inputs needs no coordination. Every
// expected geometric degeneracy is reported as an *Error rather than as
// non-finite output.
package fillet
