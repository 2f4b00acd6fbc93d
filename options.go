package wtinylfu

import "github.com/kvcache/wtinylfu/internal/hashutil"

// config holds construction-time options, following the functional
// options idiom the pack's own cache library exposes as
// Option[K, V] (see OrlovEvgeny-go-mcache/options.go) — generalized
// here to this spec's one real construction-time knob, the key
// hasher.
type config[K comparable, V any] struct {
	hasher func(K) uint32
}

// Option configures a Cache at construction time.
type Option[K comparable, V any] func(*config[K, V])

// WithHasher overrides the default key hasher used by the frequency
// sketch. Required for key types hashutil.DefaultHasher doesn't know
// how to turn into bytes without reflection.
func WithHasher[K comparable, V any](hasher func(K) uint32) Option[K, V] {
	return func(c *config[K, V]) {
		c.hasher = hasher
	}
}

// WithMetroHasher selects github.com/dgryski/go-metro as the string
// key hasher instead of the default Jenkins byte mixer. Faster, at
// the cost of reproducible test vectors across platforms.
func WithMetroHasher[V any]() Option[string, V] {
	return func(c *config[string, V]) {
		c.hasher = hashutil.MetroHasher
	}
}
