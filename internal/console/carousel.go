package console

import (
	"context"
	"sync"
	"time"
)

// Carousel is a rotating index over n slides.
type Carousel struct {
	mu       sync.Mutex
	n        int
	idx      int
	interval time.Duration
}

func NewCarousel(n int, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Carousel{n: n, interval: interval}
}

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx
}

// Next advances and wraps around.
func (c *Carousel) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == 0 {
		return 0
	}
	c.idx = (c.idx + 1) % c.n
	return c.idx
}

func (c *Carousel) Prev() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == 0 {
		return 0
	}
	c.idx = (c.idx - 1 + c.n) % c.n
	return c.idx
}

// Run advances once per interval and calls show with the new index until
// ctx is done. A carousel with fewer than two slides never ticks.
func (c *Carousel) Run(ctx context.Context, show func(int)) {
	if c.n < 2 {
		<-ctx.Done()
		return
	}
	t := time.NewTicker(c.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			show(c.Next())
		}
	}
}
