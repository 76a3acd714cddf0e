package server_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/server"
)

type recordingProducer struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
}

func (p *recordingProducer) SendMessage(_ context.Context, _ string, _ []byte, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, value)
	return nil
}

func (p *recordingProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *recordingProducer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func (p *recordingProducer) message(i int) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.messages[i]
}

func TestAuditManager_PublishesFullBatch(t *testing.T) {
	producer := &recordingProducer{}
	manager := server.NewAuditManager(2, 3, time.Minute, producer, "audit", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	for i := 0; i < 3; i++ {
		manager.Log(server.AuditEntry{RequestID: "r", Method: "POST", Path: "/customers", StatusCode: 201})
	}

	require.Eventually(t, func() bool {
		return producer.count() == 3
	}, 2*time.Second, 10*time.Millisecond)

	var entry server.AuditEntry
	require.NoError(t, json.Unmarshal(producer.message(0), &entry))
	assert.Equal(t, "/customers", entry.Path)
	assert.Equal(t, 201, entry.StatusCode)
}

func TestAuditManager_FlushesPartialBatchOnTimeout(t *testing.T) {
	producer := &recordingProducer{}
	manager := server.NewAuditManager(1, 10, 50*time.Millisecond, producer, "audit", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	manager.Log(server.AuditEntry{RequestID: "r", Method: "DELETE", Path: "/orders/O1", StatusCode: 204})

	require.Eventually(t, func() bool {
		return producer.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAuditManager_ShutdownDrainsAndClosesProducer(t *testing.T) {
	producer := &recordingProducer{}
	manager := server.NewAuditManager(1, 100, time.Minute, producer, "audit", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	manager.Log(server.AuditEntry{RequestID: "r", Method: "POST", Path: "/sellers", StatusCode: 201})

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	manager.Shutdown(shutdownCtx)

	assert.Equal(t, 1, producer.count())
	assert.True(t, producer.closed)
}
