// Package pkg provides the core libraries for poimap, which places points of
// interest on a map from compass bearings.
//
// # Overview
//
// A map holds POIs. Each POI is either placed by coordinates or derived
// from bearing records: "from POI B, POI A lies at bearing θ, distance d".
// The pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (POI model, bearing geometry, reference graph,
//     recalculation)
//  2. [store], [cache] - Persistence of maps and memoized results
//  3. [pipeline] - Orchestration (load → resolve → report → save)
//  4. [render] - Reference graph visualization
//  5. [io] - JSON and YAML map documents
//
// # Architecture
//
// The data flow of a recalculation:
//
//	store.Store (file or MongoDB)
//	         ↓
//	    [core/depgraph] package (reference graph, cycles, processing order)
//	         ↓
//	    [core/bearing] package (offsets and position resolution)
//	         ↓
//	    [core/recalc] package (dependency-ordered pass over the map)
//	         ↓
//	    Updated POIs and diagnostics
//
// # Quick Start
//
// Resolve the positions of a collection of POIs:
//
//	import (
//	    "github.com/matzehuels/poimap/pkg/core/poi"
//	    "github.com/matzehuels/poimap/pkg/core/recalc"
//	)
//
//	now := time.Now()
//	wreck := poi.New("Aurora", poi.CategoryWreck, 0, 0, 0, now)
//	wreck.DefinitionMode = poi.ModeBearings
//	wreck.BearingRecords = []poi.BearingRecord{
//	    poi.NewBearingRecord(poi.LifeboatID, 90, 100, poi.DirectionTo, now),
//	}
//
//	res := recalc.All([]poi.POI{poi.Lifeboat(now), wreck}, recalc.Options{})
//	// res.POIs[1] is now at (-100, 0)
//
// # Main Packages
//
// [core/poi] - POIs, bearing records, categories and maps.
//
// [core/bearing] - Bearing and distance to planar offset conversion, position
// resolution from one or many records, and record validation.
//
// [core/depgraph] - The reference graph between POIs, cycle detection and
// the dependency-respecting processing order.
//
// [core/recalc] - The map recalculation pass, including single-POI
// resolution.
//
// [store] - Map persistence with [store.FileStore] for the CLI and
// [store.MongoStore] for the shared server.
//
// [cache] - Result caching with file, Redis and null backends.
//
// [pipeline] - The [pipeline.Runner] used by both the CLI and the HTTP API.
//
// [observability] - Hooks for recalculation, store, cache and HTTP events.
//
// [errors] - Coded errors shared by every package.
//
// [render/nodelink] - Graphviz rendering of the reference graph.
package pkg
