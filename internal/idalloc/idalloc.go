// Package idalloc draws collision-free random identifiers from a bounded range.
package idalloc

import (
	"context"
	"fmt"
	"math/rand/v2"

	apperrors "recipehub/internal/errors"
)

// ExistsFunc reports whether id is already taken.
type ExistsFunc func(ctx context.Context, id int) (bool, error)

// Allocator draws ids uniformly from [Min, Max].
type Allocator struct {
	Min         int
	Max         int
	MaxAttempts int
}

// New returns an allocator over [min, max] giving up after maxAttempts collisions.
func New(min, max, maxAttempts int) *Allocator {
	return &Allocator{Min: min, Max: max, MaxAttempts: maxAttempts}
}

// Allocate returns the first drawn id for which exists reports false.
// It fails with ErrIDSpaceExhausted once MaxAttempts draws all collided.
func (a *Allocator) Allocate(ctx context.Context, exists ExistsFunc) (int, error) {
	if a.Max < a.Min {
		return 0, fmt.Errorf("invalid id range [%d, %d]", a.Min, a.Max)
	}
	attempts := a.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	span := a.Max - a.Min + 1

	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		id := a.Min + rand.IntN(span)
		taken, err := exists(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("check id %d: %w", id, err)
		}
		if !taken {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %d attempts in [%d, %d]", apperrors.ErrIDSpaceExhausted, attempts, a.Min, a.Max)
}
