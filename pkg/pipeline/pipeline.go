// Package pipeline runs position recalculation against stored maps.
//
// The engine in [recalc] is pure: it takes POIs and returns POIs. This
// package wraps it with everything around a real run so that the CLI and
// the HTTP API behave identically:
//
//  1. Load: fetch the map from a [store.Store] (or take POIs directly)
//  2. Resolve: run [recalc.All], reusing a cached result when the POIs'
//     positional content has been seen before
//  3. Report: log cycles and diagnostics and fire observability hooks
//  4. Save: optionally write the updated POIs back to the store
//
// # Usage
//
//	runner := pipeline.NewRunner(st, cache, nil, logger)
//	res, err := runner.RecalculateMap(ctx, mapID, pipeline.Options{Save: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Stats.Updated, "POIs moved")
//
// Recalculate every stored map concurrently:
//
//	results, err := runner.RecalculateStore(ctx, pipeline.Options{Save: true})
package pipeline

import (
	"time"

	"github.com/matzehuels/poimap/pkg/core/recalc"
)

// DefaultConcurrency bounds how many maps RecalculateStore processes at once.
const DefaultConcurrency = 4

// Graph output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidGraphFormats is the set of supported graph output formats.
var ValidGraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// Options configures a recalculation run.
type Options struct {
	// Save writes updated POIs back to the store.
	Save bool

	// Refresh bypasses the cache lookup. The fresh result is still cached.
	Refresh bool

	// Concurrency bounds RecalculateStore. Defaults to DefaultConcurrency.
	Concurrency int

	// Now is the clock for UpdatedAt stamps. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) recalcOptions() recalc.Options {
	return recalc.Options{Now: o.Now}
}

// Result is the outcome of recalculating one map.
type Result struct {
	recalc.Result

	// MapID is empty for stateless runs.
	MapID string `json:"mapId,omitempty"`

	// Saved reports whether updated POIs were written back.
	Saved bool `json:"saved"`

	// CacheHit reports whether the engine pass was skipped.
	CacheHit bool `json:"cacheHit"`

	Stats Stats `json:"stats"`
}

// Stats summarizes a run.
type Stats struct {
	POICount    int           `json:"poiCount"`
	EdgeCount   int           `json:"edgeCount"`
	Updated     int           `json:"updated"`
	Cycles      int           `json:"cycles"`
	Diagnostics int           `json:"diagnostics"`
	Duration    time.Duration `json:"duration"`
}

// GraphOptions configures dependency graph rendering.
type GraphOptions struct {
	// Format is one of dot, svg, png or pdf. Defaults to svg.
	Format string

	// Detailed adds coordinates and bearing labels.
	Detailed bool

	// Scale applies to png output. Defaults to 2.
	Scale float64
}
