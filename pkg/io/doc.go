// Package io provides JSON and YAML import and export for maps.
//
// # Overview
//
// A map document is the serialized form of [poi.Map]: its id, name,
// timestamps and full POI list including bearing records. The same field
// names are used in both encodings, so a map exported as YAML can be
// re-imported as JSON after conversion and vice versa.
//
// # JSON Format
//
//	{
//	  "id": "map-4f1c...",
//	  "name": "Crater Edge",
//	  "pois": [
//	    {"id": "lifeboat-5", "name": "Lifeboat 5", "type": "lifeboat",
//	     "x": 0, "y": 0, "depth": 0, "definitionMode": "coordinates"},
//	    {"id": "wreck", "name": "Aurora", "type": "wreck",
//	     "x": -100, "y": 0, "depth": 0, "definitionMode": "bearings",
//	     "bearingRecords": [
//	       {"id": "r1", "referencePOIId": "lifeboat-5",
//	        "bearing": 90, "distance": 100, "direction": "to"}
//	     ]}
//	  ]
//	}
//
// # Import
//
// Use [ImportMap] to read a file (format chosen by extension) or [ReadMap]
// to read from any io.Reader. Imported documents are checked for duplicate
// or malformed POI ids and unknown categories, and are given a fresh map id
// when none is present. Bearing records that name unknown POIs are kept: the
// resolution engine reports them as diagnostics rather than failing.
//
// # Export
//
// Use [ExportMap] to write a file or [WriteMap] to write to any io.Writer.
package io
