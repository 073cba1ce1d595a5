package quadrature

import (
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoConfig controls how long memoized values live.
type MemoConfig struct {
	Expiration      time.Duration // Lifetime of a cached value (cache.NoExpiration = forever)
	CleanupInterval time.Duration // How often expired values are purged (0 = never)
}

// DefaultMemoConfig keeps values for the lifetime of the Memo.
func DefaultMemoConfig() MemoConfig {
	return MemoConfig{
		Expiration:      cache.NoExpiration,
		CleanupInterval: 0,
	}
}

// Memo caches the values of a pure integrand by the exact bits of x.
//
// Refining a composite rule by doubling n revisits every abscissa of the
// coarser level. Solved one level at a time (StudyConfig.Workers = 1), a
// study over doubling levels evaluates each point once; levels running
// concurrently may miss the same point together and evaluate it again.
type Memo struct {
	fn     Func
	cache  *cache.Cache
	hits   int64
	misses int64
}

// Memoize wraps fn in a Memo.
func Memoize(fn Func, cfg MemoConfig) *Memo {
	return &Memo{
		fn:    fn,
		cache: cache.New(cfg.Expiration, cfg.CleanupInterval),
	}
}

// Eval returns fn(x), computing it at most once per distinct x
// (two goroutines missing the same x at once may both compute it).
func (m *Memo) Eval(x float64) float64 {
	key := strconv.FormatUint(math.Float64bits(x), 16)

	if v, ok := m.cache.Get(key); ok {
		atomic.AddInt64(&m.hits, 1)
		return v.(float64)
	}

	atomic.AddInt64(&m.misses, 1)
	y := m.fn(x)
	m.cache.Set(key, y, cache.DefaultExpiration)
	return y
}

// Func returns Eval as a Func.
func (m *Memo) Func() Func {
	return m.Eval
}

// Hits returns how many evaluations were served from the cache.
func (m *Memo) Hits() int64 {
	return atomic.LoadInt64(&m.hits)
}

// Misses returns how many evaluations reached the wrapped integrand.
func (m *Memo) Misses() int64 {
	return atomic.LoadInt64(&m.misses)
}

// Len returns the number of cached values.
func (m *Memo) Len() int {
	return m.cache.ItemCount()
}

// Reset drops every cached value and zeroes the counters.
func (m *Memo) Reset() {
	m.cache.Flush()
	atomic.StoreInt64(&m.hits, 0)
	atomic.StoreInt64(&m.misses, 0)
}
