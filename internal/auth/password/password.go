// Package password hashes and verifies account passwords with bcrypt
package password

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultCost is the bcrypt cost used in production (~100ms per check)
const DefaultCost = 12

// Codec hashes and verifies passwords.
// Hashing is CPU bound, so concurrent hash/verify calls are bounded by a
// weighted semaphore instead of letting every request burn a core at once.
type Codec struct {
	cost int
	sem  *semaphore.Weighted
}

// Option configures a Codec
type Option func(*Codec)

// WithCost overrides the bcrypt cost factor
func WithCost(cost int) Option {
	return func(c *Codec) {
		c.cost = cost
	}
}

// WithConcurrency bounds how many hash or verify operations run at once
func WithConcurrency(n int) Option {
	return func(c *Codec) {
		if n > 0 {
			c.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// NewCodec creates a codec with DefaultCost and NumCPU concurrency unless overridden
func NewCodec(opts ...Option) (*Codec, error) {
	c := &Codec{
		cost: DefaultCost,
		sem:  semaphore.NewWeighted(int64(runtime.NumCPU())),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cost < bcrypt.MinCost || c.cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return c, nil
}

// Hash returns a self-describing bcrypt hash (algorithm, cost and salt embedded)
func (c *Codec) Hash(ctx context.Context, password string) (string, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash.
// A malformed hash or a cancelled context yields false, never an error.
func (c *Codec) Verify(ctx context.Context, password, hash string) bool {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer c.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
