package panel

import (
	"context"
	"sync"
	"time"
)

// DefaultRefreshInterval is the speed polling period.
const DefaultRefreshInterval = 500 * time.Millisecond

// RefreshController runs tick on a fixed interval once started. Start is
// idempotent and there is no Stop: the timer lives as long as ctx.
type RefreshController struct {
	ctx      context.Context
	interval time.Duration
	tick     func()

	mu      sync.Mutex
	running bool
}

func NewRefreshController(ctx context.Context, interval time.Duration, tick func()) *RefreshController {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &RefreshController{ctx: ctx, interval: interval, tick: tick}
}

// Start creates the timer unless one is already active. It reports whether
// this call created it.
func (c *RefreshController) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return false
	}
	c.running = true

	ticker := time.NewTicker(c.interval)
	go c.loop(ticker)
	return true
}

// Running reports whether the timer has been started.
func (c *RefreshController) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *RefreshController) loop(ticker *time.Ticker) {
	defer ticker.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.tick()
		}
	}
}
