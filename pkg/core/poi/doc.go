// Package poi defines the points of interest placed on a map and the
// bearing records that position them relative to each other.
//
// A POI is either coordinates-defined (X and Y are authoritative) or
// bearings-defined (X and Y are derived by the resolution engine in
// [github.com/matzehuels/poimap/pkg/core/recalc] from the POI's bearing
// records). POI A depends on POI B whenever a bearing record of A names B
// as its reference.
//
// Values in this package are plain data. Copy them with [POI.Clone] or
// [CloneAll] before mutating a collection that someone else owns.
package poi
