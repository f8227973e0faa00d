// Package bloom implements a redis-backed Bloom filter. The moderation
// pipeline uses it as a fast prefilter for duplicate-upload detection:
// a miss means the file was definitely never moderated before, a hit is
// confirmed against the decision store.
package bloom

import (
	"context"
	_ "embed"
	"errors"

	"videomod/internal/pkg/hash"
	"videomod/internal/pkg/redis"
)

var (
	// ErrTooLargeOffset indicates the offset is too large in bitset.
	ErrTooLargeOffset = errors.New("too large offset")

	//go:embed set_script.lua
	setLuaScript string
	setScript    = redis.NewScript(setLuaScript)

	//go:embed get_script.lua
	getLuaScript string
	getScript    = redis.NewScript(getLuaScript)
)

// Filter represents a Bloom filter data structure.
type Filter struct {
	bitSet         bitSetProvider
	bits           uint
	kHashFunctions uint
}

// NewBloomFilter creates a new Bloom filter over the given redis key.
func NewBloomFilter(store redis.Cache, key string, bits uint, kHashFunctions uint) *Filter {
	return &Filter{
		bits:           bits,
		bitSet:         newRedisBitSet(store, key, bits),
		kHashFunctions: kHashFunctions,
	}
}

// getLocations computes the bit locations for the given data.
func (f *Filter) getLocations(data []byte) []uint {
	locations := make([]uint, f.kHashFunctions)
	for i := uint(0); i < f.kHashFunctions; i++ {
		hashVal := hash.Hash(append(data, byte(i)))
		locations[i] = uint(hashVal % uint64(f.bits))
	}
	return locations
}

// Add adds the given data to the Bloom filter.
func (f *Filter) Add(ctx context.Context, data []byte) error {
	locations := f.getLocations(data)
	return f.bitSet.set(ctx, locations)
}

// Exists checks if the given data may exist in the Bloom filter.
// False positives are possible, false negatives are not.
func (f *Filter) Exists(ctx context.Context, data []byte) (bool, error) {
	locations := f.getLocations(data)
	isSet, err := f.bitSet.check(ctx, locations)
	if err != nil {
		return false, err
	}
	return isSet, nil
}

// Reset clears the underlying bitset.
func (f *Filter) Reset(ctx context.Context) error {
	return f.bitSet.del(ctx)
}
