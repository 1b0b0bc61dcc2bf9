package main

import (
	"chat-rooms/domain"
	"chat-rooms/i18n"
	"chat-rooms/infrastructure/provider"
	"chat-rooms/observability"
	"chat-rooms/projection"
	"chat-rooms/repositories"
	"chat-rooms/runtime"
	"chat-rooms/runtime/workers"
	"chat-rooms/services"
	"chat-rooms/sink"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// app owns every long-lived component of the program.
type app struct {
	log        *slog.Logger
	db         *badger.DB
	supervisor *workers.Supervisor
	provider   *provider.LoopbackProvider
	sessions   *runtime.SessionRegistry
	rooms      *projection.RoomList
	outcomes   repositories.OutcomeRepository
	localizer  *i18n.Localizer
	notifier   *workers.NotifierWorker
	dispatcher *runtime.Dispatcher
	service    *services.RoomActionService
}

func newApp(log *slog.Logger, config Config, out io.Writer) (*app, error) {
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLogger(repositories.NewBadgerLogger(log)).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	a, err := wire(log, config, db, out)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func wire(log *slog.Logger, config Config, db *badger.DB, out io.Writer) (*app, error) {
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, err
	}
	localizer, err := i18n.NewLocalizer(bundle, config.Locale)
	if err != nil {
		return nil, err
	}

	loopback := provider.NewLoopbackProvider(log, config.ProviderLatency)
	rooms := projection.NewRoomList(log, repositories.NewRoomRepository(db, log))
	// Rooms flagged for auto-join come back with a live handle.
	if err := rooms.Restore(func(room repositories.DiskRoom) domain.ChatRoom {
		if !room.AutoJoin {
			return nil
		}
		return loopback.Room(room.Name)
	}); err != nil {
		return nil, err
	}

	outcomes := repositories.NewOutcomeRepository(db, log)
	sessions := runtime.NewSessionRegistry(log)
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	notifier := workers.NewNotifierWorker(log,
		observability.NewConsoleNotifier(out, log, config.Colours), config.NotificationBuffer)

	dispatcher, err := runtime.NewDispatcher(log, runtime.DispatcherConfig{
		NumberOfWorkers: config.NumberOfWorkers,
		QueueSize:       config.QueueSize,
		EventBufferSize: config.EventBufferSize,
		ActionTimeout:   config.ActionTimeout,
		SinkTimeout:     config.SinkTimeout,
		MetricInterval:  config.MetricInterval,
	}, supervisor, sessions, rooms, notifier, localizer,
		sink.NewOutcomeSink(outcomes, log), rooms)
	if err != nil {
		return nil, err
	}

	bind := func(name string) domain.ChatRoom { return loopback.Room(name) }
	return &app{
		log:        log,
		db:         db,
		supervisor: supervisor,
		provider:   loopback,
		sessions:   sessions,
		rooms:      rooms,
		outcomes:   outcomes,
		localizer:  localizer,
		notifier:   notifier,
		dispatcher: dispatcher,
		service:    services.NewRoomActionService(log, dispatcher, rooms, bind),
	}, nil
}

// start runs the notifier and the dispatcher under the supervisor.
func (a *app) start(ctx context.Context) error {
	a.supervisor.Add(a.notifier)
	if err := a.dispatcher.Start(ctx); err != nil {
		return fmt.Errorf("dispatcher failed to start: %w", err)
	}
	return nil
}

func (a *app) close() {
	a.dispatcher.Stop()
	a.log.Info("Closing BadgerDB...")
	_ = a.db.Close()
}
