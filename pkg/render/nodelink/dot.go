package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/poimap/pkg/core/depgraph"
	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/render"
)

// cycleColor outlines POIs and edges that sit on a circular reference.
const cycleColor = "#d63031"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds coordinates, depth and definition mode to node labels and
	// bearing, distance and direction to edge labels. When false, nodes show
	// only the POI name.
	Detailed bool
}

// ToDOT converts a POI dependency graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Each POI becomes a box filled with its category colour; bearings-defined
// POIs are drawn dashed. Edges run from the reference POI to the POI whose
// record names it. Members of cycles, and the edges between them, are
// outlined in red.
func ToDOT(pois []poi.POI, g *depgraph.Graph, cycles [][]string, opts Options) string {
	onCycle := depgraph.CycleMembers(cycles)
	cycleEdge := make(map[[2]string]bool)
	for _, c := range cycles {
		for i, id := range c {
			cycleEdge[[2]string{id, c[(i+1)%len(c)]}] = true
		}
	}

	records := make(map[string]poi.BearingRecord)
	byID := make(map[string]poi.POI, len(pois))
	for _, p := range pois {
		if _, dup := byID[p.ID]; dup {
			continue
		}
		byID[p.ID] = p
		for _, r := range p.BearingRecords {
			records[r.ID] = r
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=12];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range g.IDs() {
		p := byID[id]
		attrs := fmtAttrs(p, fmtLabel(p, opts.Detailed), onCycle[id])
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		var attrs []string
		if opts.Detailed {
			if r, ok := records[e.RecordID]; ok {
				attrs = append(attrs, fmt.Sprintf("label=%q", fmtRecord(r)))
			}
		}
		// Edges point reference -> dependent; the cycle path runs the same way.
		if cycleEdge[[2]string{e.From, e.To}] {
			attrs = append(attrs, fmt.Sprintf("color=%q", cycleColor), "penwidth=2")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p poi.POI, detailed bool) string {
	name := p.Name
	if name == "" {
		name = p.ID
	}
	if !detailed {
		return name
	}
	parts := []string{
		p.Category.Info().Label,
		fmt.Sprintf("(%.1f, %.1f) %.0fm deep", p.X, p.Y, p.Depth),
	}
	if p.IsBearingDefined() {
		parts = append(parts, fmt.Sprintf("%d bearing(s)", len(p.BearingRecords)))
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func fmtRecord(r poi.BearingRecord) string {
	return fmt.Sprintf("%s %.0f° %.0fm", r.Direction, r.Bearing, r.Distance)
}

func fmtAttrs(p poi.POI, label string, cyclic bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", p.Category.Info().Color),
	}
	if p.IsBearingDefined() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	if cyclic {
		attrs = append(attrs, fmt.Sprintf("color=%q", cycleColor), "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
