// Package render provides visualization output for POI maps.
//
// # Overview
//
// The [nodelink] subpackage draws the bearing dependency graph of a map as
// a Graphviz diagram: one box per POI, one arrow per bearing record, with
// circular references highlighted.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(pois, g, cycles, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/matzehuels/poimap/pkg/render/nodelink
package render
