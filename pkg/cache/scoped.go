package cache

import "github.com/matzehuels/poimap/pkg/core/poi"

// ScopedKeyer wraps a Keyer with a prefix so that several poimap servers
// can share one Redis backend without colliding. It is built from the
// cache.prefix config key.
//
//	keyer := NewScopedKeyer(nil, "team-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RecalcKey generates a prefixed recalculation key.
func (k *ScopedKeyer) RecalcKey(pois []poi.POI) string {
	return k.scope(k.inner.RecalcKey(pois))
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(pois []poi.POI, opts GraphKeyOpts) string {
	return k.scope(k.inner.GraphKey(pois, opts))
}

// scope keeps an empty key empty so uncacheable input stays uncached.
func (k *ScopedKeyer) scope(key string) string {
	if key == "" {
		return ""
	}
	return k.prefix + key
}
