// Package worker implements the buffered worker pool for the prediction
// audit trail. It decouples request handling from analytics writes:
// predictions are enqueued, batched into ClickHouse for offline retraining,
// and mirrored into Redis live counters. An audit failure never fails the
// prediction that produced it.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/scoutcentral/scout-api/internal/models"
)

// Prometheus metrics
var (
	auditEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_audit_events_enqueued_total",
		Help: "Total number of prediction audit events enqueued",
	})

	auditProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_audit_events_processed_total",
		Help: "Total number of audit events written by workers",
	})

	auditFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_audit_events_failed_total",
		Help: "Total number of audit events that failed processing",
	})

	auditDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_audit_events_dropped_total",
		Help: "Total number of audit events dropped due to a full queue",
	})

	auditQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scout_audit_queue_depth",
		Help: "Current depth of the audit queue",
	})

	auditBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scout_audit_batch_insert_duration_seconds",
		Help:    "Duration of audit batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})
)

// PoolConfig configures the audit worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Redis         *redis.Client
	Logger        *zap.Logger
}

// Pool manages workers that batch prediction audit events
type Pool struct {
	config   PoolConfig
	jobQueue chan *models.PredictionEvent
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

// NewPool creates a new audit worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan *models.PredictionEvent, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Audit worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the pool. The queue is closed first so workers
// drain and flush everything buffered before the context is cancelled.
func (p *Pool) Stop() {
	p.logger.Info("Stopping audit worker pool...")
	close(p.jobQueue)
	p.wg.Wait()
	p.cancel()
	p.logger.Info("Audit worker pool stopped")
}

// Enqueue adds an audit event to the queue. Events are shed when the queue is
// full; auditing must never block a prediction request.
func (p *Pool) Enqueue(event *models.PredictionEvent) bool {
	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue audit event (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- event:
		auditEnqueued.Inc()
		return true
	default:
		auditDropped.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker drains the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]*models.PredictionEvent, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Audit batch failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			auditFailed.Add(float64(len(batch)))
		} else {
			auditProcessed.Add(float64(len(batch)))
		}
		auditBatchDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case event, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, event)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			return
		}
	}
}

// processBatch writes a batch to ClickHouse and mirrors live counters into
// Redis. The Redis side effects are fire-and-forget relative to the insert.
func (p *Pool) processBatch(batch []*models.PredictionEvent) error {
	ctx := context.Background()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, `
		INSERT INTO scout_stats.prediction_events (
			timestamp, request_id, player_name, position, label,
			feature_names, feature_values
		)
	`)
	if err != nil {
		return err
	}

	for _, event := range batch {
		err := chBatch.Append(
			event.Timestamp,
			event.RequestID,
			event.PlayerName,
			string(event.Position),
			string(event.Label),
			event.Features,
			event.Values,
		)
		if err != nil {
			p.logger.Warnw("Failed to append audit event to batch",
				"error", err, "position", event.Position)
			continue
		}
	}

	// Must copy because the slice is reused in the worker loop
	batchCopy := make([]*models.PredictionEvent, len(batch))
	copy(batchCopy, batch)
	go p.updateLiveCounters(ctx, batchCopy)

	return chBatch.Send()
}

// updateLiveCounters keeps the dashboard's live prediction state in Redis:
// per-position and per-label counts, plus the last label per player.
func (p *Pool) updateLiveCounters(ctx context.Context, batch []*models.PredictionEvent) {
	if p.config.Redis == nil {
		return
	}
	pipe := p.config.Redis.Pipeline()

	for _, event := range batch {
		pipe.Incr(ctx, "predictions:position:"+string(event.Position))
		pipe.Incr(ctx, "predictions:label:"+string(event.Label))
		if event.PlayerName != "" {
			pipe.HSet(ctx, "predictions:last", event.PlayerName, string(event.Label))
		}
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		p.logger.Errorw("Redis pipeline failed", "error", err)
	}
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			auditQueueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
