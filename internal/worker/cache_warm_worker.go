package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stockroom/inventory_api/internal/service"
)

// CacheWarmWorker periodically reloads the active product list into the cache
// so reads after TTL expiry do not pay the first-miss cost.
type CacheWarmWorker struct {
	productService *service.ProductService
	interval       time.Duration
}

// NewCacheWarmWorker constructs a CacheWarmWorker.
func NewCacheWarmWorker(productService *service.ProductService, interval time.Duration) *CacheWarmWorker {
	return &CacheWarmWorker{
		productService: productService,
		interval:       interval,
	}
}

// Start begins the periodic warm loop and listens for context cancellation.
func (w *CacheWarmWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting cache warm worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Cache warm worker stopped")
			return
		}
	}
}

func (w *CacheWarmWorker) run(ctx context.Context) {
	start := time.Now()
	if err := w.productService.RefreshCache(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to warm product list cache")
		return
	}

	log.Debug().Dur("duration", time.Since(start)).Msg("Product list cache warmed")
}
