package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-system/internal/api/metrics"
	"github.com/sweetshop/inventory-system/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes low-stock alerts to a fixed set of workers using
// consistent hashing on the sweet ID, guaranteeing per-sweet alert ordering.
type Dispatcher struct {
	workers []chan domain.StockAlert
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.StockAlert, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.StockAlert, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an alert to the worker responsible for its sweet ID.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(alert domain.StockAlert) {
	i := d.shardIndex(alert.SweetID)
	d.workers[i] <- alert
	metrics.AlertQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a sweet ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(sweetID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sweetID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.StockAlert) {
	for {
		select {
		case <-ctx.Done():
			return
		case alert, ok := <-ch:
			if !ok {
				return
			}
			metrics.AlertQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			metrics.LowStockAlertsTotal.Inc()
			d.log.Warn().
				Str("sweet_id", alert.SweetID).
				Str("name", alert.Name).
				Int("quantity", alert.Quantity).
				Int("threshold", alert.Threshold).
				Int("worker_id", id).
				Msg("low stock")
		}
	}
}
