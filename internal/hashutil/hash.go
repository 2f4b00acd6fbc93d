// Package hashutil provides the key-hashing primitives the frequency
// sketch depends on: a reproducible 32-bit byte mixer, a
// nearest-power-of-two helper, and a small set of default hashers for
// common comparable key types.
package hashutil

import (
	"encoding/binary"
	"math/bits"

	metro "github.com/dgryski/go-metro"
)

// Jenkins computes Bob Jenkins' one-at-a-time hash over data.
//
// This is the exact byte-wise mixer reproducible test vectors
// assume; any 32-bit hash with reasonable avalanche would satisfy the
// frequency sketch functionally, but this one is required for
// reproducible results across platforms.
func Jenkins(data []byte) uint32 {
	var h uint32
	for _, b := range data {
		h += uint32(b)
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

// NearestPowerOfTwo returns the smallest power of two >= n, for n >= 1.
func NearestPowerOfTwo(n int) uint32 {
	if n < 1 {
		n = 1
	}
	x := uint32(n)
	if bits.OnesCount32(x) == 1 {
		return x
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x++
	return x
}

// MetroHasher hashes a string with github.com/dgryski/go-metro and
// truncates the result to 32 bits. It is an optional, faster
// alternative to the default Jenkins hasher for string keys, in the
// same spirit as crwen-ckv/cache/tinylfu.go's keyToHash.
func MetroHasher(s string) uint32 {
	return uint32(metro.Hash64Str(s, 0))
}

// DefaultHasher returns a Jenkins-backed HashFunc for key types this
// package knows how to turn into bytes without reflection, and false
// for anything else.
func DefaultHasher[K comparable]() (func(K) uint32, bool) {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(k K) uint32 {
			return Jenkins([]byte(any(k).(string)))
		}, true
	case []byte:
		return func(k K) uint32 {
			return Jenkins(any(k).([]byte))
		}, true
	case int:
		return func(k K) uint32 {
			return hashInt64(int64(any(k).(int)))
		}, true
	case int32:
		return func(k K) uint32 {
			return hashInt64(int64(any(k).(int32)))
		}, true
	case int64:
		return func(k K) uint32 {
			return hashInt64(any(k).(int64))
		}, true
	case uint:
		return func(k K) uint32 {
			return hashInt64(int64(any(k).(uint)))
		}, true
	case uint32:
		return func(k K) uint32 {
			return hashInt64(int64(any(k).(uint32)))
		}, true
	case uint64:
		return func(k K) uint32 {
			return hashInt64(int64(any(k).(uint64)))
		}, true
	default:
		return nil, false
	}
}

func hashInt64(v int64) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return Jenkins(buf[:])
}
