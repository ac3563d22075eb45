package metrics

import (
	"time"

	"photo-viewer/internal/logging"
)

// StatsProvider reports the persisted cache population.
type StatsProvider interface {
	CacheStats() (total, valid int)
}

// Collector refreshes the cache population gauges on an interval, so
// the exported numbers track reality even when no sweep has run.
type Collector struct {
	provider StatsProvider
	interval time.Duration
	stopChan chan struct{}
}

// NewCollector creates a collector polling the given provider.
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		provider: provider,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the collection loop.
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the collection loop.
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start, then on the interval.
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.provider == nil {
		return
	}

	total, valid := c.provider.CacheStats()
	CacheEntries.Set(float64(total))
	CacheValidEntries.Set(float64(valid))

	logging.Debug("metrics collected: cache entries=%d valid=%d", total, valid)
}
