package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/markeddown"
)

// expiredPurger is implemented by caches that can drop only stale entries.
type expiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if c.Expired {
		p, ok := deps.Cache.(expiredPurger)
		if !ok {
			fmt.Fprintln(deps.Stderr, "error: cache does not support purging expired entries")
			return markeddown.Errorf(markeddown.EINVALID, "cache does not support purging expired entries")
		}
		n, err := p.PurgeExpired(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", markeddown.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Removed %d expired entries\n", n)
		return nil
	}

	if err := deps.Cache.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", markeddown.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "Cache cleared")
	return nil
}
