package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/inkfusion/notes-server/internal/config"
	"github.com/inkfusion/notes-server/internal/logger"
	"github.com/inkfusion/notes-server/internal/store"
)

// mockWorker is a test implementation of the Worker interface
// that signals when Run was called.
type mockWorker struct {
	mu       sync.Mutex
	runCount int
	started  chan struct{}
}

func newMockWorker() *mockWorker {
	return &mockWorker{started: make(chan struct{})}
}

func (m *mockWorker) Run(ctx context.Context) {
	m.mu.Lock()
	m.runCount++
	m.mu.Unlock()
	close(m.started)
	<-ctx.Done()
}

func TestWorkers_Run_AllWorkersAreStarted(t *testing.T) {
	w1 := newMockWorker()
	w2 := newMockWorker()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ws := &Workers{workers: []Worker{w1, w2}}
	ws.Run(ctx)

	for i, w := range []*mockWorker{w1, w2} {
		select {
		case <-w.started:
		case <-time.After(time.Second):
			t.Fatalf("worker[%d]: Run was not called", i)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run(context.Background())
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
}

func TestNewWorkers_CleanupDisabled(t *testing.T) {
	ws := NewWorkers(&store.Storages{}, config.Workers{CleanupInterval: 0}, logger.Nop())

	if len(ws.workers) != 0 {
		t.Errorf("expected no workers when cleanup is disabled, got %d", len(ws.workers))
	}
}

func TestNewWorkers_CleanupEnabled(t *testing.T) {
	ws := NewWorkers(&store.Storages{}, config.Workers{
		CleanupInterval: time.Minute,
		CleanupGrace:    time.Hour,
	}, logger.Nop())

	if len(ws.workers) != 1 {
		t.Errorf("expected one worker when cleanup is enabled, got %d", len(ws.workers))
	}
}
