// Package debug holds the periodic memory logger enabled by the -debug flag.
// Heap and goroutine figures come from the Go runtime, peak RSS from the OS.
package debug

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// Sample is one reading of process memory.
type Sample struct {
	Goroutines uint64
	HeapAlloc  uint64
	HeapInuse  uint64
	StackInuse uint64
	NumGC      uint32
	MaxRSS     uint64 // peak resident set size, 0 when the OS query failed
}

// Read takes a sample. The returned error comes from the RSS query only.
func Read() (Sample, error) {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := Sample{
		HeapAlloc:  ms.HeapAlloc,
		HeapInuse:  ms.HeapInuse,
		StackInuse: ms.StackInuse,
		NumGC:      ms.NumGC,
	}
	if samples[0].Value.Kind() == metrics.KindUint64 {
		s.Goroutines = samples[0].Value.Uint64()
	}
	rss, err := peakRSS()
	s.MaxRSS = rss
	return s, err
}

// StartMemLogger logs a Sample every interval until ctx is done.
// RSS failures are logged once and suppressed.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			s, err := Read()
			if err != nil && !rssErrLogged {
				logger.Warn("memlog: rss query failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Info("memstats",
				slog.Uint64("goroutines", s.Goroutines),
				slog.String("heap_alloc", humanize.Bytes(s.HeapAlloc)),
				slog.String("heap_inuse", humanize.Bytes(s.HeapInuse)),
				slog.Uint64("stack_inuse", s.StackInuse),
				slog.String("max_rss", humanize.Bytes(s.MaxRSS)),
				slog.Uint64("num_gc", uint64(s.NumGC)),
			)
		}
	}()
}
