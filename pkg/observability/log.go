package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries
// to a charmbracelet logger.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to log.Default() if l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l.WithPrefix("hooks")}
}

// SetAll registers h for every hook category.
func (h *LogHooks) SetAll() {
	SetPipelineHooks(h)
	SetStoreHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnRecalcStart(_ context.Context, mapID string, poiCount int) {
	h.Logger.Debug("recalc start", "map", mapID, "pois", poiCount)
}

func (h *LogHooks) OnRecalcComplete(_ context.Context, mapID string, updated, cycles int, d time.Duration, err error) {
	h.Logger.Debug("recalc complete", "map", mapID, "updated", updated, "cycles", cycles, "duration", d, "err", err)
}

func (h *LogHooks) OnDiagnostic(_ context.Context, mapID, poiID, code string) {
	h.Logger.Debug("diagnostic", "map", mapID, "poi", poiID, "code", code)
}

func (h *LogHooks) OnValidate(_ context.Context, poiID string, problems int) {
	h.Logger.Debug("validate", "poi", poiID, "problems", problems)
}

func (h *LogHooks) OnLoad(_ context.Context, backend, mapID string, d time.Duration, err error) {
	h.Logger.Debug("store load", "backend", backend, "map", mapID, "duration", d, "err", err)
}

func (h *LogHooks) OnSave(_ context.Context, backend, mapID string, poiCount int, d time.Duration, err error) {
	h.Logger.Debug("store save", "backend", backend, "map", mapID, "pois", poiCount, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ StoreHooks    = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
