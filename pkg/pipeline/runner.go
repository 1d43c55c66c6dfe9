package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/poimap/pkg/cache"
	"github.com/matzehuels/poimap/pkg/core/bearing"
	"github.com/matzehuels/poimap/pkg/core/depgraph"
	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/core/recalc"
	"github.com/matzehuels/poimap/pkg/errors"
	"github.com/matzehuels/poimap/pkg/observability"
	"github.com/matzehuels/poimap/pkg/store"
)

// Runner encapsulates recalculation with storage, caching and logging.
// Both CLI and API use it to avoid duplicating that logic.
//
// The Runner holds no per-run state; multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The store may be nil for runners that only serve stateless calls.
func NewRunner(st store.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Store:  st,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedResult is what the cache stores: resolved coordinates rather than
// whole POIs, so names and notes always come from the current input.
type cachedResult struct {
	Coords      map[string][2]float64 `json:"coords"`
	Order       []string              `json:"order"`
	Cycles      [][]string            `json:"cycles,omitempty"`
	Updated     []string              `json:"updated,omitempty"`
	Diagnostics []bearing.Diagnostic  `json:"diagnostics,omitempty"`
}

// Recalculate runs a whole-map pass over pois without touching the store.
func (r *Runner) Recalculate(ctx context.Context, pois []poi.POI, opts Options) (*Result, error) {
	return r.recalculate(ctx, "", pois, opts)
}

func (r *Runner) recalculate(ctx context.Context, mapID string, pois []poi.POI, opts Options) (res *Result, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRecalcStart(ctx, mapID, len(pois))
	defer func() {
		updated, cycles := 0, 0
		if res != nil {
			updated, cycles = res.Stats.Updated, res.Stats.Cycles
		}
		hooks.OnRecalcComplete(ctx, mapID, updated, cycles, time.Since(start), err)
	}()

	key := r.Keyer.RecalcKey(pois)
	res = &Result{MapID: mapID}

	if cached, ok := r.lookup(ctx, key, opts); ok {
		res.Result = apply(pois, cached, opts.now())
		res.CacheHit = true
	} else {
		res.Result = recalc.All(pois, opts.recalcOptions())
		r.store(ctx, key, res.Result)
	}

	res.Stats = Stats{
		POICount:    len(pois),
		EdgeCount:   depgraph.Build(pois).EdgeCount(),
		Updated:     len(res.Updated),
		Cycles:      len(res.Cycles),
		Diagnostics: len(res.Diagnostics),
		Duration:    time.Since(start),
	}
	r.report(ctx, mapID, res)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string, opts Options) (cachedResult, bool) {
	if opts.Refresh || key == "" {
		return cachedResult{}, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		if err != nil {
			r.Logger.Debug("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeRecalc)
		return cachedResult{}, false
	}
	var cr cachedResult
	if err := json.Unmarshal(data, &cr); err != nil {
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeRecalc)
		return cachedResult{}, false
	}
	observability.Cache().OnCacheHit(ctx, cache.KeyTypeRecalc)
	return cr, true
}

func (r *Runner) store(ctx context.Context, key string, res recalc.Result) {
	if key == "" {
		return
	}
	cr := cachedResult{
		Coords:      make(map[string][2]float64, len(res.Updated)),
		Order:       res.Order,
		Cycles:      res.Cycles,
		Updated:     res.Updated,
		Diagnostics: res.Diagnostics,
	}
	for _, p := range res.POIs {
		cr.Coords[p.ID] = [2]float64{p.X, p.Y}
	}
	data, err := json.Marshal(cr)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLRecalc); err != nil {
		r.Logger.Debug("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cache.KeyTypeRecalc, len(data))
}

// apply replays a cached pass onto a fresh copy of pois.
func apply(pois []poi.POI, cr cachedResult, now time.Time) recalc.Result {
	out := poi.CloneAll(pois)
	updated := make(map[string]bool, len(cr.Updated))
	for _, id := range cr.Updated {
		updated[id] = true
	}
	for i := range out {
		if !updated[out[i].ID] {
			continue
		}
		// Duplicate ids resolve once, at their first position.
		delete(updated, out[i].ID)
		if c, ok := cr.Coords[out[i].ID]; ok {
			out[i].X, out[i].Y = c[0], c[1]
			out[i].UpdatedAt = now
		}
	}
	return recalc.Result{
		POIs:        out,
		Order:       cr.Order,
		Cycles:      cr.Cycles,
		Updated:     cr.Updated,
		Diagnostics: cr.Diagnostics,
	}
}

func (r *Runner) report(ctx context.Context, mapID string, res *Result) {
	logger := r.Logger
	if mapID != "" {
		logger = logger.With("map", mapID)
	}
	for _, d := range res.Diagnostics {
		observability.Pipeline().OnDiagnostic(ctx, mapID, d.POIID, string(d.Code))
		logger.Warn(d.Message, "poi", d.POIID, "record", d.RecordID, "code", d.Code)
	}
	logger.Info("recalculated positions",
		"pois", res.Stats.POICount,
		"updated", res.Stats.Updated,
		"cache_hit", res.CacheHit,
		"duration", res.Stats.Duration)
}

// RecalculateMap loads a map, recalculates it and optionally saves it.
// An empty mapID selects the store's current map.
func (r *Runner) RecalculateMap(ctx context.Context, mapID string, opts Options) (*Result, error) {
	m, err := r.load(ctx, mapID)
	if err != nil {
		return nil, err
	}
	res, err := r.recalculate(ctx, m.ID, m.POIs, opts)
	if err != nil {
		return nil, err
	}
	if opts.Save && len(res.Updated) > 0 {
		if _, err := r.Store.UpdatePOIs(ctx, m.ID, res.POIs); err != nil {
			return nil, err
		}
		res.Saved = true
	}
	return res, nil
}

// RecalculateStore recalculates every stored map. Maps are independent, so
// they run concurrently, bounded by opts.Concurrency. Results are returned
// in store list order. The first failure cancels the remaining maps.
func (r *Runner) RecalculateStore(ctx context.Context, opts Options) ([]*Result, error) {
	if r.Store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "runner has no store")
	}
	maps, err := r.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]*Result, len(maps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, m := range maps {
		g.Go(func() error {
			res, err := r.RecalculateMap(gctx, m.ID, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ValidatePOI checks a POI against a stored map and returns every problem
// found. An empty slice means the POI may be saved.
func (r *Runner) ValidatePOI(ctx context.Context, mapID string, p poi.POI) ([]string, error) {
	m, err := r.load(ctx, mapID)
	if err != nil {
		return nil, err
	}
	problems := bearing.ValidatePOI(p, m.POIs)
	observability.Pipeline().OnValidate(ctx, p.ID, len(problems))
	return problems, nil
}

func (r *Runner) load(ctx context.Context, mapID string) (*poi.Map, error) {
	if r.Store == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "runner has no store")
	}
	if mapID == "" {
		return r.Store.Current(ctx)
	}
	return r.Store.Get(ctx, mapID)
}

// Close releases resources held by the runner (cache and store).
func (r *Runner) Close() error {
	var first error
	if r.Cache != nil {
		first = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
