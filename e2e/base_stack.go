package e2e

import (
	"chat-rooms/domain"
	"chat-rooms/i18n"
	"chat-rooms/infrastructure/provider"
	"chat-rooms/projection"
	"chat-rooms/repositories"
	"chat-rooms/runtime"
	"chat-rooms/runtime/workers"
	"chat-rooms/services"
	"chat-rooms/sink"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

// Report is one warning or error shown to the user.
type Report struct {
	Warning bool
	Title   string
	Message string
}

// recordingNotifier stands in for the terminal.
type recordingNotifier struct {
	mu      sync.Mutex
	reports []Report
}

func (n *recordingNotifier) ReportWarning(title, message string) {
	n.record(Report{Warning: true, Title: title, Message: message})
}

func (n *recordingNotifier) ReportError(title, message string) {
	n.record(Report{Title: title, Message: message})
}

func (n *recordingNotifier) record(r Report) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reports = append(n.reports, r)
}

func (n *recordingNotifier) Reports() []Report {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Report(nil), n.reports...)
}

// BaseStackSuite runs the whole dispatcher stack in process, on a fresh database per test.
type BaseStackSuite struct {
	suite.Suite
	Config Config

	DB         *badger.DB
	Provider   *provider.LoopbackProvider
	Sessions   *runtime.SessionRegistry
	Rooms      *projection.RoomList
	Outcomes   repositories.OutcomeRepository
	Notifier   *recordingNotifier
	Localizer  *i18n.Localizer
	Dispatcher *runtime.Dispatcher
	Service    *services.RoomActionService
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseStackSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

func (s *BaseStackSuite) SetupTest() {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(s.T().TempDir()).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)

	bundle, err := i18n.LoadEmbedded()
	s.Require().NoError(err)
	localizer, err := i18n.NewLocalizer(bundle, s.Config.Locale)
	s.Require().NoError(err)

	s.DB = db
	s.Provider = provider.NewLoopbackProvider(log, s.Config.ProviderLatency)
	s.Sessions = runtime.NewSessionRegistry(log)
	s.Rooms = projection.NewRoomList(log, repositories.NewRoomRepository(db, log))
	s.Outcomes = repositories.NewOutcomeRepository(db, log)
	s.Notifier = &recordingNotifier{}
	s.Localizer = localizer

	supervisor := workers.NewSupervisor(log, 10*time.Millisecond)
	notifier := workers.NewNotifierWorker(log, s.Notifier, 16)
	supervisor.Add(notifier)

	s.Dispatcher, err = runtime.NewDispatcher(log, runtime.DispatcherConfig{
		NumberOfWorkers: s.Config.Workers,
		QueueSize:       16,
		EventBufferSize: 64,
		ActionTimeout:   time.Second,
		SinkTimeout:     time.Second,
	}, supervisor, s.Sessions, s.Rooms, notifier, localizer,
		sink.NewOutcomeSink(s.Outcomes, log), s.Rooms)
	s.Require().NoError(err)
	s.Require().NoError(s.Dispatcher.Start(context.Background()))

	bind := func(name string) domain.ChatRoom { return s.Provider.Room(name) }
	s.Service = services.NewRoomActionService(log, s.Dispatcher, s.Rooms, bind)
}

func (s *BaseStackSuite) TearDownTest() {
	s.Dispatcher.Stop()
	s.Require().NoError(s.DB.Close())
}

// Step prints a colorized header then runs fn as a subtest.
func (s *BaseStackSuite) Step(name string, fn func()) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
	s.Run(name, fn)
}

// Perform dispatches the action by room name and waits for its outcome.
func (s *BaseStackSuite) Perform(action domain.Action, name string) domain.ActionOutcome {
	done, err := s.Service.Perform(context.Background(), action, name)
	s.Require().NoError(err)
	select {
	case outcome := <-done:
		return outcome
	case <-time.After(5 * time.Second):
		s.FailNow("no outcome", "%s %s", action, name)
		return domain.ActionOutcome{}
	}
}

// WaitReports waits until n reports were delivered.
func (s *BaseStackSuite) WaitReports(n int) []Report {
	s.Require().Eventually(func() bool {
		return len(s.Notifier.Reports()) >= n
	}, 2*time.Second, 5*time.Millisecond)
	return s.Notifier.Reports()
}

// WaitHistory waits until the room has n persisted outcomes, newest first.
func (s *BaseStackSuite) WaitHistory(name string, n int) []repositories.DiskOutcome {
	var outcomes []repositories.DiskOutcome
	s.Require().Eventually(func() bool {
		var err error
		outcomes, err = s.Outcomes.Last(domain.NewRoomID(name), 0)
		return err == nil && len(outcomes) >= n
	}, 2*time.Second, 5*time.Millisecond)
	return outcomes
}
