package bloom

import "context"

// bitSetProvider is the bit-level store backing a Filter.
type bitSetProvider interface {
	check(ctx context.Context, offsets []uint) (bool, error)
	set(ctx context.Context, offsets []uint) error
	del(ctx context.Context) error
}
