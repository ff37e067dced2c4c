// Package graph defines the polyline graph consumed by the fillet engine.
// A PolylineGraph is a read-only snapshot of one object's vertices, edges
// and selection state; the engine never writes back into it.
package graph
