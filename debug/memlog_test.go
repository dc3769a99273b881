package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRead_ReportsRuntimeFigures(t *testing.T) {
	s, err := Read()
	if err != nil {
		t.Logf("rss unavailable: %v", err)
	}
	if s.Goroutines == 0 || s.HeapAlloc == 0 {
		t.Fatalf("expected non-zero goroutines and heap, got %+v", s)
	}
	if err == nil && s.MaxRSS == 0 {
		t.Fatalf("peak rss reported as zero without error")
	}
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (w *syncBuffer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.Write(p)
}

func (w *syncBuffer) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.String()
}

func TestStartMemLogger_LogsUntilCancelled(t *testing.T) {
	buf := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	ctx, cancel := context.WithCancel(context.Background())
	StartMemLogger(ctx, 5*time.Millisecond, logger)
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(buf.String(), `"msg":"memstats"`) {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("no memstats line logged")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	out := buf.String()
	if !strings.Contains(out, `"max_rss":`) || strings.Contains(out, `"rss":`) {
		t.Fatalf("memstats line should label peak rss as max_rss: %s", out)
	}
}
