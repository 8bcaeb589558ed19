package srv

import (
	"context"
	"errors"
	"sync"
)

// cleanupService releases resources on shutdown and does nothing on start.
type cleanupService struct {
	once  sync.Once
	funcs []func() error
	err   error
}

func (c *cleanupService) Start(ctx context.Context) error {
	return nil
}

// Shutdown runs the cleanup functions once, last registered first.
func (c *cleanupService) Shutdown(ctx context.Context) error {
	c.once.Do(func() {
		var errs []error
		for i := len(c.funcs) - 1; i >= 0; i-- {
			if c.funcs[i] != nil {
				errs = append(errs, c.funcs[i]())
			}
		}
		c.err = errors.Join(errs...)
	})
	return c.err
}

func NewCleanup(fns ...func() error) Service {
	return &cleanupService{funcs: fns}
}
