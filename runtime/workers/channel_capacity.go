package workers

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelCapacity is one sample of a buffered channel.
type ChannelCapacity struct {
	Name     string
	Capacity int
	Length   int
}

// Saturated reports whether the channel is at least 80% full.
func (c ChannelCapacity) Saturated() bool {
	return c.Capacity > 0 && c.Length*5 >= c.Capacity*4
}

// ChannelCapacityWorker periodically samples the length and capacity of queues.
// Reading len and cap is non-blocking, so it never interferes with the producers.
type ChannelCapacityWorker struct {
	log            *slog.Logger
	channels       []NamedChannel
	metricInterval time.Duration

	mu     sync.RWMutex
	latest []ChannelCapacity
}

func NewChannelCapacityWorker(log *slog.Logger, channels []NamedChannel, metricInterval time.Duration) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:            log,
		channels:       channels,
		metricInterval: metricInterval,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping capacity sampling")
			return nil
		case <-ticker.C:
			w.Sample()
		}
	}
}

// Sample reads every channel once and keeps the result as the latest snapshot.
func (w *ChannelCapacityWorker) Sample() []ChannelCapacity {
	samples := make([]ChannelCapacity, 0, len(w.channels))
	for _, nc := range w.channels {
		v := reflect.ValueOf(nc.Channel)
		if v.Kind() != reflect.Chan {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		sample := ChannelCapacity{Name: nc.Name, Capacity: v.Cap(), Length: v.Len()}
		if sample.Saturated() {
			w.log.Warn("Queue almost full", "name", sample.Name, "length", sample.Length, "capacity", sample.Capacity)
		}
		samples = append(samples, sample)
	}
	w.mu.Lock()
	w.latest = samples
	w.mu.Unlock()
	return samples
}

// Latest returns the last snapshot, nil before the first sample.
func (w *ChannelCapacityWorker) Latest() []ChannelCapacity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}
