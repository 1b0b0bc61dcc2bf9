// Package provider holds chat room providers bound to the domain.ChatRoom port.
package provider

import (
	"chat-rooms/domain"
	"context"
	stderrors "errors"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

var _ domain.ChatRoom = (*LoopbackRoom)(nil)

// LoopbackProvider is an in-process account: rooms live as long as the process.
// latency simulates the network round trip of join and leave.
type LoopbackProvider struct {
	mu         sync.RWMutex
	log        *slog.Logger
	latency    time.Duration
	registered bool
	rooms      map[domain.RoomID]*LoopbackRoom
}

func NewLoopbackProvider(log *slog.Logger, latency time.Duration) *LoopbackProvider {
	return &LoopbackProvider{
		log:     log,
		latency: latency,
		rooms:   make(map[domain.RoomID]*LoopbackRoom),
	}
}

func (p *LoopbackProvider) Register() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered = true
	p.log.Info("Provider registered")
}

// Unregister drops the connection, so every room ends up not joined.
func (p *LoopbackProvider) Unregister() {
	p.mu.Lock()
	p.registered = false
	rooms := lo.Values(p.rooms)
	p.mu.Unlock()
	for _, room := range rooms {
		room.setJoined(false)
	}
	p.log.Info("Provider unregistered", "rooms", len(rooms))
}

func (p *LoopbackProvider) IsRegistered() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registered
}

// Room returns the room with this name, creating it on first use.
func (p *LoopbackProvider) Room(name string) *LoopbackRoom {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := domain.NewRoomID(name)
	if room, ok := p.rooms[id]; ok {
		return room
	}
	room := &LoopbackRoom{provider: p, name: name}
	p.rooms[id] = room
	return room
}

type LoopbackRoom struct {
	provider *LoopbackProvider
	name     string

	mu       sync.Mutex
	joined   bool
	failNext error
	joins    int
	leaves   int
}

func (r *LoopbackRoom) Name() string {
	return r.name
}

func (r *LoopbackRoom) IsJoined() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.joined
}

func (r *LoopbackRoom) Join(ctx context.Context) error {
	if err := r.roundTrip(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.joins++
	if err := r.takeFailure(); err != nil {
		return err
	}
	if !r.provider.IsRegistered() {
		return domain.NewOperationFailed(domain.ReasonProviderNotRegistered, r.name, nil)
	}
	if r.joined {
		return domain.NewOperationFailed(domain.ReasonSubscriptionAlreadyExists, r.name, nil)
	}
	r.joined = true
	return nil
}

// Leave is a no-op on a room that is not joined.
func (r *LoopbackRoom) Leave(ctx context.Context) error {
	if err := r.roundTrip(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaves++
	if err := r.takeFailure(); err != nil {
		return err
	}
	if !r.provider.IsRegistered() {
		return domain.NewOperationFailed(domain.ReasonProviderNotRegistered, r.name, nil)
	}
	r.joined = false
	return nil
}

// FailNext makes the next Join or Leave fail with err.
func (r *LoopbackRoom) FailNext(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

// Calls returns how many joins and leaves reached the room.
func (r *LoopbackRoom) Calls() (joins, leaves int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.joins, r.leaves
}

func (r *LoopbackRoom) setJoined(joined bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.joined = joined
}

func (r *LoopbackRoom) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	if err == nil {
		return nil
	}
	var opErr *domain.OperationFailedError
	if stderrors.As(err, &opErr) {
		return err
	}
	return domain.NewOperationFailed(domain.ReasonOther, r.name, err)
}

func (r *LoopbackRoom) roundTrip(ctx context.Context) error {
	if r.provider.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.provider.latency):
		return nil
	}
}
