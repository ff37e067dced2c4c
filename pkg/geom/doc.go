// Package geom provides the small set of 3D primitives the fillet engine
// needs: a point/vector value type, plane normals, axis-angle rotation,
// circumcircles and cubic Bezier evaluation. Vector arithmetic is delegated
// to the sdfx vec/v3 package so the kernel and the engine agree on numerics.
package geom
