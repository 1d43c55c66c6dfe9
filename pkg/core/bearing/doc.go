// Package bearing converts compass observations into planar positions.
//
// # Coordinate Plane
//
// The map is a flat plane measured in metres. X grows east and Y grows
// south (screen orientation), so a compass bearing of 0 points toward -Y.
// Bearings are plain compass angles in [0, 360), increasing clockwise.
//
// # Offsets
//
// [Offset] turns one observation (bearing, 3-D distance, direction and the
// depths of both ends) into a horizontal displacement measured from the
// reference POI to the owning POI. The vertical component is removed first;
// a distance shorter than the depth difference clamps to a zero offset
// rather than failing.
//
// # Resolution
//
// [Resolve] produces one position from a POI's bearing records. A single
// record is applied exactly. Several records are each applied independently
// and the estimates are averaged. This is a simple mean, not a
// least-squares fit, so every observation carries equal weight.
//
// Records whose reference cannot be found are skipped and reported through
// the returned [Diagnostic] slice. Resolution only fails when no estimate
// can be produced.
//
// # Validation
//
// [Validate] is advisory: it returns human-readable messages and never
// blocks resolution. Callers decide whether to refuse a save.
package bearing
