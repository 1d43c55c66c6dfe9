// Package nodelink renders POI dependency graphs as node-link diagrams.
//
// # Overview
//
// Each POI becomes a box filled with its category colour and each bearing
// record becomes an arrow from the reference POI to the POI it positions,
// so arrows follow the order in which the resolution engine computes
// coordinates. Bearings-defined POIs are drawn with dashed outlines. POIs
// and edges on a circular reference are outlined in red.
//
// # Usage
//
//	g := depgraph.Build(pois)
//	dot := nodelink.ToDOT(pois, g, depgraph.DetectCycles(g), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels gain category, coordinates and depth; edge
//     labels gain direction, bearing and distance
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
