package workers

import (
	"chat-rooms/contract"
	"chat-rooms/domain"
	"chat-rooms/errors"
	"context"
	"fmt"
	"log/slog"
	"time"
)

var _ contract.Worker = (*RoomActionWorker)(nil)

// Task is one blocking chat room call submitted to a RoomActionWorker.
// Done receives exactly one outcome and is closed afterwards.
type Task struct {
	Request domain.ActionRequest
	Exec    func(ctx context.Context) domain.ActionOutcome
	Done    chan domain.ActionOutcome
}

// Complete delivers the outcome. Done must be buffered.
func (t Task) Complete(outcome domain.ActionOutcome) {
	if t.Done == nil {
		return
	}
	t.Done <- outcome
	close(t.Done)
}

// RoomActionWorker executes the tasks of its shard one at a time, in submission order.
// Every room is routed to a single shard, so at most one join or leave per room is in flight.
type RoomActionWorker struct {
	shard   int
	tasks   <-chan Task
	timeout time.Duration
	log     *slog.Logger
}

func NewRoomActionWorker(shard int, tasks <-chan Task, timeout time.Duration, log *slog.Logger) *RoomActionWorker {
	return &RoomActionWorker{
		shard:   shard,
		tasks:   tasks,
		timeout: timeout,
		log:     log.With("shard", shard),
	}
}

func (w *RoomActionWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case task, ok := <-w.tasks:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			// select picks at random once both are ready
			if ctx.Err() != nil {
				task.Complete(abort(task, errors.ErrDispatcherStopped))
				return ctx.Err()
			}
			if err := w.execute(ctx, task); err != nil {
				return err
			}
		}
	}
}

// execute turns a panicking task into an ErrWorkerPanic outcome,
// then fails the worker so the supervisor restarts it.
func (w *RoomActionWorker) execute(ctx context.Context, task Task) (err error) {
	taskCtx, cancel := w.taskContext(ctx)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
			w.log.Error("Chat room action panicked",
				"action", task.Request.Action, "room", task.Request.Entry.Name, "error", err)
			task.Complete(abort(task, err))
		}
	}()

	task.Complete(task.Exec(taskCtx))
	return nil
}

// abort completes a task that never ran to its end.
func abort(task Task, err error) domain.ActionOutcome {
	return domain.ActionOutcome{
		RequestID: task.Request.ID,
		Action:    task.Request.Action,
		RoomID:    task.Request.Entry.ID,
		RoomName:  task.Request.Entry.Name,
		Reason:    domain.ReasonOther,
		Err:       err,
		At:        time.Now().UTC(),
	}
}

func (w *RoomActionWorker) taskContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, w.timeout)
}
