// Package recalc recomputes the coordinates of bearings-defined POIs.
//
// [All] is the whole-map pass: it builds the dependency graph, reports
// cycles, orders POIs so that every reference is resolved before the POIs
// measured against it, and resolves each bearings-defined POI against the
// working copy so later POIs see fresh values. [One] recomputes a single
// POI against a collection as-is.
//
// Both functions are pure. The input collection is never modified, nothing
// is logged, and every skipped record or unresolved POI is returned as a
// [bearing.Diagnostic].
package recalc

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/poimap/pkg/core/bearing"
	"github.com/matzehuels/poimap/pkg/core/depgraph"
	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
)

// Options configures a recalculation.
type Options struct {
	// Now returns the timestamp written to UpdatedAt of every resolved POI.
	// Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Result is the outcome of a whole-map pass.
type Result struct {
	// POIs is the updated collection, in input order.
	POIs []poi.POI `json:"pois"`
	// Order is the processing order computed by depgraph.Order.
	Order []string `json:"order"`
	// Cycles lists every cyclic reference chain found. POIs on a cycle keep
	// their previous coordinates.
	Cycles [][]string `json:"cycles,omitempty"`
	// Updated lists the ids whose coordinates were recomputed, in order.
	Updated []string `json:"updated,omitempty"`
	// Diagnostics explains every record skipped and every POI left unchanged.
	Diagnostics []bearing.Diagnostic `json:"diagnostics,omitempty"`
}

// One recomputes p against all and returns the updated POI.
//
// Coordinates-defined POIs and bearings-defined POIs without records are
// returned unchanged. On success X, Y and UpdatedAt are refreshed. When
// resolution fails the original POI is returned together with a diagnostic
// describing the failure.
func One(p poi.POI, all []poi.POI, opts Options) (poi.POI, []bearing.Diagnostic) {
	if !p.NeedsResolution() {
		return p, nil
	}
	out, diags, _ := resolve(p, poi.Index(all), opts)
	return out, diags
}

// resolve reports ok=false when p was returned unchanged.
func resolve(p poi.POI, index map[string]poi.POI, opts Options) (poi.POI, []bearing.Diagnostic, bool) {
	pt, diags, err := bearing.Resolve(p.BearingRecords, index, p.Depth)
	for i := range diags {
		diags[i].POIID = p.ID
	}
	if err != nil {
		return p, append(diags, bearing.Diagnostic{
			POIID:   p.ID,
			Code:    errors.GetCode(err),
			Message: fmt.Sprintf("failed to recalculate coordinates: %s", errors.UserMessage(err)),
		}), false
	}

	out := p.Clone()
	out.X, out.Y = pt.X, pt.Y
	out.UpdatedAt = opts.now()
	return out, diags, true
}

// All recomputes every bearings-defined POI of a map in dependency order.
//
// The returned collection is a deep copy of pois with X, Y and UpdatedAt
// refreshed for each resolved POI. POIs that are coordinates-defined, have no
// records, sit on or downstream of a cycle, or fail to resolve pass through
// unchanged. A failure for one POI never stops the pass.
func All(pois []poi.POI, opts Options) Result {
	work := poi.CloneAll(pois)
	g := depgraph.Build(work)

	res := Result{
		Cycles: depgraph.DetectCycles(g),
		Order:  depgraph.Order(g),
	}
	for _, c := range res.Cycles {
		res.Diagnostics = append(res.Diagnostics, bearing.Diagnostic{
			POIID:   c[0],
			Code:    errors.ErrCodeCyclicReference,
			Message: "circular reference: " + strings.Join(c, " -> ") + " -> " + c[0],
		})
	}

	// Positions of the working copy, keyed by id. Entries are replaced as
	// POIs resolve so later POIs chain off fresh coordinates.
	index := poi.Index(work)
	slot := make(map[string]int, len(work))
	for i, p := range work {
		if _, ok := slot[p.ID]; !ok {
			slot[p.ID] = i
		}
	}

	for _, id := range res.Order {
		i := slot[id]
		p := work[i]
		if !p.NeedsResolution() {
			continue
		}

		updated, diags, ok := resolve(p, index, opts)
		res.Diagnostics = append(res.Diagnostics, diags...)
		if !ok {
			continue
		}
		work[i] = updated
		index[id] = updated
		res.Updated = append(res.Updated, id)
	}

	for _, id := range blockedByCycles(g, res) {
		res.Diagnostics = append(res.Diagnostics, bearing.Diagnostic{
			POIID:   id,
			Code:    errors.ErrCodeCyclicReference,
			Message: "depends on a circular reference; keeping previous coordinates",
		})
	}

	res.POIs = work
	return res
}

// blockedByCycles lists POIs missing from the order that are not themselves
// on a reported cycle.
func blockedByCycles(g *depgraph.Graph, res Result) []string {
	members := depgraph.CycleMembers(res.Cycles)
	var out []string
	for _, id := range depgraph.Blocked(g, res.Order) {
		if !members[id] {
			out = append(out, id)
		}
	}
	return out
}
