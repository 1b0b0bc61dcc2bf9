// Package runtime runs chat room actions in the background and routes their outcomes
// to the session manager, the room list and the notification surface.
package runtime

import (
	"chat-rooms/contract"
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"chat-rooms/errors"
	"chat-rooms/runtime/workers"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
)

var _ contract.IDispatcher = (*Dispatcher)(nil)

type DispatcherConfig struct {
	NumberOfWorkers int           `validate:"min=1"`
	QueueSize       int           `validate:"min=1"`
	EventBufferSize int           `validate:"min=1"`
	ActionTimeout   time.Duration `validate:"min=0"`
	SinkTimeout     time.Duration `validate:"gt=0"`
	MetricInterval  time.Duration `validate:"min=0"`
}

// Dispatcher performs join, leave and remove requests on chat rooms.
// Blocking calls run on a bounded pool of shards; a room always maps to the same shard.
type Dispatcher struct {
	mu         sync.RWMutex
	running    bool
	done       chan struct{}
	cancel     context.CancelFunc
	log        *slog.Logger
	validate   *validator.Validate
	config     DispatcherConfig
	supervisor contract.ISupervisor
	sessions   contract.SessionManager
	rooms      contract.RoomList
	notifier   contract.Notifier
	localizer  contract.Localizer
	sinks      []contract.EventSink
	shards     []chan workers.Task
	events     chan event.DomainEvent
	capacity   *workers.ChannelCapacityWorker
}

func NewDispatcher(
	log *slog.Logger,
	config DispatcherConfig,
	supervisor contract.ISupervisor,
	sessions contract.SessionManager,
	rooms contract.RoomList,
	notifier contract.Notifier,
	localizer contract.Localizer,
	sinks ...contract.EventSink,
) (*Dispatcher, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid dispatcher config: %w", err)
	}
	shards := make([]chan workers.Task, config.NumberOfWorkers)
	channels := make([]workers.NamedChannel, 0, len(shards)+1)
	for i := range shards {
		shards[i] = make(chan workers.Task, config.QueueSize)
		channels = append(channels, workers.NamedChannel{Name: fmt.Sprintf("shard-%d", i), Channel: shards[i]})
	}
	events := make(chan event.DomainEvent, config.EventBufferSize)
	channels = append(channels, workers.NamedChannel{Name: "events", Channel: events})
	return &Dispatcher{
		log:        log,
		validate:   validate,
		config:     config,
		supervisor: supervisor,
		sessions:   sessions,
		rooms:      rooms,
		notifier:   notifier,
		localizer:  localizer,
		sinks:      sinks,
		shards:     shards,
		events:     events,
		capacity:   workers.NewChannelCapacityWorker(log, channels, config.MetricInterval),
	}, nil
}

// Start registers the shard workers and the event fanout, then runs the supervisor
// in the background. It returns once the dispatcher accepts requests.
// A stopped dispatcher cannot be started again.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return nil
	}
	if d.done != nil {
		return errors.ErrDispatcherStopped
	}
	for i, shard := range d.shards {
		d.supervisor.Add(workers.NewRoomActionWorker(i, shard, d.config.ActionTimeout, d.log))
	}
	d.supervisor.Add(workers.NewEventFanout(d.log, d.events, d.config.SinkTimeout, d.sinks...))
	if d.config.MetricInterval > 0 {
		d.supervisor.Add(d.capacity)
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.running = true
	d.cancel = cancel
	d.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		d.supervisor.Run(runCtx)
	}(d.done)

	d.log.Info("Chat room dispatcher started", "workers", len(d.shards), "queue_size", d.config.QueueSize)
	return nil
}

// Stop cancels in-flight actions and completes queued ones with ErrDispatcherStopped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	done, cancel := d.done, d.cancel
	d.mu.Unlock()

	d.log.Info("Requesting dispatcher shutdown")
	cancel()
	d.supervisor.Stop()
	<-done

	for _, shard := range d.shards {
		d.drain(shard)
	}
	d.log.Debug("Dispatcher stopped")
}

// QueueStats samples the shard queues and the event queue.
func (d *Dispatcher) QueueStats() []workers.ChannelCapacity {
	return d.capacity.Sample()
}

func (d *Dispatcher) drain(shard chan workers.Task) {
	for {
		select {
		case task := <-shard:
			task.Complete(d.outcome(task.Request, errors.ErrDispatcherStopped))
		default:
			return
		}
	}
}

// Dispatch performs the request. The returned channel receives exactly one outcome
// then is closed; callers are free to ignore it.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.ActionRequest) (<-chan domain.ActionOutcome, error) {
	if err := d.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return nil, errors.ErrDispatcherStopped
	}

	switch req.Action {
	case domain.ActionRemove:
		return d.remove(req)
	case domain.ActionLeave:
		return d.leave(req)
	case domain.ActionJoin:
		return d.join(req)
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownAction, req.Action)
	}
}

// remove leaves the room in the background when connected, then closes the session
// and drops the entry from the list. Nothing is ever reported to the user.
// A rejected leave keeps the room tracked.
func (d *Dispatcher) remove(req domain.ActionRequest) (<-chan domain.ActionOutcome, error) {
	entry := req.Entry
	room := entry.Room
	outcomes := completed(d.outcome(req, nil))
	if room != nil {
		var err error
		outcomes, err = d.submit(req, func(ctx context.Context) domain.ActionOutcome {
			err := room.Leave(ctx)
			outcome := d.outcome(req, err)
			if err != nil {
				d.log.Warn("Failed to leave removed chat room", "room", outcome.RoomName, "error", err)
				d.publish(event.FromOutcome(outcome))
			}
			return outcome
		})
		if err != nil {
			return nil, err
		}
	}

	d.closeSession(entry)
	d.rooms.RemoveRoom(entry)
	d.publish(event.RoomRemoved{
		RequestID: req.ID,
		Room:      entry.ID,
		Name:      entry.Name,
		Connected: room != nil,
		At:        time.Now().UTC(),
	})
	return outcomes, nil
}

func (d *Dispatcher) leave(req domain.ActionRequest) (<-chan domain.ActionOutcome, error) {
	entry := req.Entry
	room := entry.Room
	if room == nil {
		return completed(d.notConnected(req, domain.MsgHaveToBeConnectedToLeave)), nil
	}

	return d.submit(req, func(ctx context.Context) domain.ActionOutcome {
		err := room.Leave(ctx)
		outcome := d.outcome(req, err)
		name := outcome.RoomName
		if err != nil {
			d.log.Error(fmt.Sprintf("Failed to leave chat room: %s", name),
				"room", name, "reason", outcome.Reason, "error", err)
			d.notifier.ReportError(d.localizer.Text(domain.MsgError), d.localizer.Text(domain.MsgFailedToLeaveChatRoom, name))
			outcome.Reported = true
			d.publish(event.FromOutcome(outcome))
			return outcome
		}

		d.closeSession(entry)
		// The list shows the room offline only after a refresh.
		d.rooms.Refresh()
		d.publish(event.FromOutcome(outcome))
		return outcome
	})
}

func (d *Dispatcher) join(req domain.ActionRequest) (<-chan domain.ActionOutcome, error) {
	room := req.Entry.Room
	if room == nil {
		return completed(d.notConnected(req, domain.MsgHaveToBeConnectedToJoin)), nil
	}

	return d.submit(req, func(ctx context.Context) domain.ActionOutcome {
		err := room.Join(ctx)
		outcome := d.outcome(req, err)
		name := outcome.RoomName
		if err == nil {
			d.publish(event.FromOutcome(outcome))
			return outcome
		}

		d.notifier.ReportError(d.localizer.Text(domain.MsgError),
			d.localizer.Text(domain.JoinFailureMessage(outcome.Reason), name))
		outcome.Reported = true
		d.log.Error(fmt.Sprintf("Failed to join chat room: %s", name),
			"room", name, "reason", outcome.Reason, "error", err)
		d.publish(event.FromOutcome(outcome))
		return outcome
	})
}

func (d *Dispatcher) notConnected(req domain.ActionRequest, key string) domain.ActionOutcome {
	d.notifier.ReportWarning(d.localizer.Text(domain.MsgWarning), d.localizer.Text(key))
	outcome := d.outcome(req, errors.ErrNotConnected)
	outcome.Reason = domain.ReasonNone
	outcome.Reported = true
	d.publish(event.FromOutcome(outcome))
	return outcome
}

// submit routes the task to the shard owning the room without blocking the caller.
func (d *Dispatcher) submit(req domain.ActionRequest, exec func(ctx context.Context) domain.ActionOutcome) (<-chan domain.ActionOutcome, error) {
	done := make(chan domain.ActionOutcome, 1)
	task := workers.Task{Request: req, Exec: exec, Done: done}
	select {
	case d.shards[d.shardOf(req.Entry.ID)] <- task:
		return done, nil
	default:
		d.log.Warn("Action queue full, dropping request", "action", req.Action, "room", req.Entry.Name)
		return nil, fmt.Errorf("%w: %s %s", errors.ErrQueueFull, req.Action, req.Entry.Name)
	}
}

func (d *Dispatcher) shardOf(id domain.RoomID) int {
	return int(xxhash.Sum64String(string(id)) % uint64(len(d.shards)))
}

func (d *Dispatcher) closeSession(entry *domain.RoomEntry) {
	if session := d.sessions.GetSession(entry); session != nil {
		d.sessions.CloseSession(session)
	}
}

func (d *Dispatcher) publish(evt event.DomainEvent) {
	select {
	case d.events <- evt:
	default:
		d.log.Warn("Event channel full, dropping event", "room", evt.RoomID())
	}
}

func (d *Dispatcher) outcome(req domain.ActionRequest, err error) domain.ActionOutcome {
	return domain.ActionOutcome{
		RequestID: req.ID,
		Action:    req.Action,
		RoomID:    req.Entry.ID,
		RoomName:  req.Entry.DisplayName(),
		Reason:    domain.ClassifyFailure(err),
		Err:       err,
		At:        time.Now().UTC(),
	}
}

func completed(outcome domain.ActionOutcome) <-chan domain.ActionOutcome {
	done := make(chan domain.ActionOutcome, 1)
	done <- outcome
	close(done)
	return done
}
