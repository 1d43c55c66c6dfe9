package pipeline

import (
	"context"

	"github.com/matzehuels/poimap/pkg/cache"
	"github.com/matzehuels/poimap/pkg/core/depgraph"
	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
	"github.com/matzehuels/poimap/pkg/observability"
	"github.com/matzehuels/poimap/pkg/render/nodelink"
)

// ValidateGraphFormat checks that format is a supported graph output format.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid graph format: %s (must be dot, svg, png or pdf)", format)
	}
	return nil
}

// Graph renders the dependency graph of pois. Rendered output other than
// DOT is cached by content.
func (r *Runner) Graph(ctx context.Context, pois []poi.POI, opts GraphOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if err := ValidateGraphFormat(opts.Format); err != nil {
		return nil, err
	}

	g := depgraph.Build(pois)
	dot := nodelink.ToDOT(pois, g, depgraph.DetectCycles(g), nodelink.Options{Detailed: opts.Detailed})
	if opts.Format == FormatDOT {
		return []byte(dot), nil
	}

	key := r.Keyer.GraphKey(pois, cache.GraphKeyOpts{Format: opts.Format, Labels: opts.Detailed})
	if key != "" {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, cache.KeyTypeGraph)
			return data, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, cache.KeyTypeGraph)

	var (
		out []byte
		err error
	)
	switch opts.Format {
	case FormatSVG:
		out, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		out, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
	case FormatPDF:
		out, err = nodelink.RenderPDF(ctx, dot)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}

	if key != "" {
		if err := r.Cache.Set(ctx, key, out, cache.TTLGraph); err == nil {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeGraph, len(out))
		}
	}
	return out, nil
}

// GraphMap renders the dependency graph of a stored map. An empty mapID
// selects the current map.
func (r *Runner) GraphMap(ctx context.Context, mapID string, opts GraphOptions) ([]byte, error) {
	m, err := r.load(ctx, mapID)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("rendering graph", "map", m.ID, "format", opts.Format)
	return r.Graph(ctx, m.POIs, opts)
}
