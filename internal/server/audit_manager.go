package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/metrics"
)

// AuditManager batches audit entries and fans them out to a worker pool that
// publishes each batch. Entries are never allowed to block a request: when
// the pipeline is saturated the entry is dropped and counted.
type AuditManager struct {
	workerCount int
	batchSize   int
	timeout     time.Duration

	producer kafka.Producer
	topic    string
	logger   *zap.Logger

	inputChan  chan AuditEntry
	batchChan  chan []AuditEntry
	shutdownCh chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

func NewAuditManager(workerCount, batchSize int, timeout time.Duration, producer kafka.Producer, topic string, logger *zap.Logger) *AuditManager {
	return &AuditManager{
		workerCount: workerCount,
		batchSize:   batchSize,
		timeout:     timeout,
		producer:    producer,
		topic:       topic,
		logger:      logger,
		inputChan:   make(chan AuditEntry, workerCount*batchSize*2),
		batchChan:   make(chan []AuditEntry, workerCount*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *AuditManager) Start(ctx context.Context) {
	m.logger.Info("starting audit manager",
		zap.Int("workers", m.workerCount),
		zap.Int("batch_size", m.batchSize),
	)

	m.wg.Add(1)
	go m.runAggregator(ctx)

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(ctx, i)
	}

	go m.monitorShutdown(ctx)
}

func (m *AuditManager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			m.logger.Info("audit manager shutdown completed")
		case <-ctx.Done():
			m.logger.Warn("audit manager shutdown interrupted")
		}

		if err := m.producer.Close(); err != nil {
			m.logger.Error("failed to close audit producer", zap.Error(err))
		}
	})
}

func (m *AuditManager) monitorShutdown(ctx context.Context) {
	<-ctx.Done()
	m.Shutdown(context.Background())
}

// Log enqueues an entry, dropping it if the pipeline has no room.
func (m *AuditManager) Log(entry AuditEntry) {
	select {
	case m.inputChan <- entry:
	default:
		metrics.AuditEntriesDroppedTotal.Inc()
	}
}

func (m *AuditManager) runAggregator(ctx context.Context) {
	defer m.wg.Done()

	var (
		batch    []AuditEntry
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		if len(batch) > 0 {
			m.dispatchBatch(batch)
		}
		close(m.batchChan)
	}()

	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
			if len(batch) >= m.batchSize {
				m.dispatchBatch(batch)
				batch = nil
				timeoutC = nil
			} else if len(batch) == 1 {
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			m.dispatchBatch(batch)
			batch = nil
			timeoutC = nil

		case <-ctx.Done():
			batch = m.drainInput(batch)
			return

		case <-m.shutdownCh:
			batch = m.drainInput(batch)
			return
		}
	}
}

// drainInput empties whatever is already queued so shutdown does not lose
// accepted entries. The deferred flush in runAggregator publishes the result.
func (m *AuditManager) drainInput(batch []AuditEntry) []AuditEntry {
	for {
		select {
		case entry := <-m.inputChan:
			batch = append(batch, entry)
		default:
			return batch
		}
	}
}

func (m *AuditManager) dispatchBatch(batch []AuditEntry) {
	batchCopy := make([]AuditEntry, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		// All workers busy and the queue is full; publish inline rather
		// than lose the batch.
		m.publishBatch(context.Background(), batchCopy)
	}
}

func (m *AuditManager) runWorker(ctx context.Context, id int) {
	defer m.wg.Done()

	for {
		select {
		case batch, ok := <-m.batchChan:
			if !ok {
				return
			}
			m.publishBatch(ctx, batch)
		case <-ctx.Done():
			// Drain whatever is already queued before exiting.
			for {
				select {
				case batch, ok := <-m.batchChan:
					if !ok {
						return
					}
					m.publishBatch(context.Background(), batch)
				default:
					return
				}
			}
		}
	}
}

func (m *AuditManager) publishBatch(ctx context.Context, batch []AuditEntry) {
	for _, entry := range batch {
		payload, err := json.Marshal(entry)
		if err != nil {
			m.logger.Error("failed to marshal audit entry", zap.Error(err))
			continue
		}

		if err := m.producer.SendMessage(ctx, m.topic, []byte(entry.RequestID), payload); err != nil {
			metrics.AuditEntriesDroppedTotal.Inc()
			m.logger.Error("failed to publish audit entry",
				zap.String("request_id", entry.RequestID),
				zap.Error(err),
			)
		}
	}
}
