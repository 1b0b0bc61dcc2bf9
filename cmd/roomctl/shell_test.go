package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig(t *testing.T) Config {
	return Config{
		LogLevel:           "DEBUG",
		BadgerFilepath:     t.TempDir(),
		NumberOfWorkers:    2,
		QueueSize:          4,
		EventBufferSize:    16,
		ActionTimeout:      time.Second,
		SinkTimeout:        time.Second,
		RestartInterval:    10 * time.Millisecond,
		NotificationBuffer: 8,
		Locale:             "en-US",
	}
}

func startApp(t *testing.T, config Config, out *syncBuffer) *app {
	t.Helper()
	a, err := newApp(logs.GetLoggerFromLevel(slog.LevelDebug), config, out)
	require.NoError(t, err)
	require.NoError(t, a.start(context.Background()))
	return a
}

func runScript(t *testing.T, a *app, out *syncBuffer, lines ...string) {
	t.Helper()
	script := strings.Join(lines, "\n") + "\n"
	require.NoError(t, newShell(a, strings.NewReader(script), out).run(context.Background()))
}

func TestShell_JoinAndLeave(t *testing.T) {
	req := require.New(t)
	out := &syncBuffer{}
	a := startApp(t, testConfig(t), out)
	defer a.close()

	// Given a registered provider and a connected room
	// When joining then leaving it
	runScript(t, a, out,
		"register",
		"track team-standup",
		"join team-standup",
		"sessions",
		"leave team-standup",
		"quit",
	)

	// Then both actions succeed and the session follows the room
	output := out.String()
	req.Contains(output, "provider registered")
	req.Contains(output, "tracking chat room team-standup")
	req.Contains(output, "session opened on team-standup")
	req.Contains(output, "join team-standup: done")
	req.Contains(output, "leave team-standup: done")
	req.Empty(a.sessions.Sessions())
	req.False(a.provider.Room("team-standup").IsJoined())
}

func TestShell_ReportsFailures(t *testing.T) {
	req := require.New(t)
	out := &syncBuffer{}
	a := startApp(t, testConfig(t), out)
	defer a.close()

	// Given an offline room and a room whose provider is not registered
	runScript(t, a, out,
		"track team-standup --offline",
		"track random",
		"join team-standup",
		"join random",
		"quit",
	)

	// Then the notifier prints a warning and an error
	req.Eventually(func() bool {
		output := out.String()
		return strings.Contains(output, "[WARNING] You have to be connected to join this chat room.") &&
			strings.Contains(output, "[ERROR] Chat room random is not connected")
	}, time.Second, 10*time.Millisecond)
	req.NotContains(out.String(), "join random: done")
}

func TestShell_HistoryAndList(t *testing.T) {
	req := require.New(t)
	out := &syncBuffer{}
	a := startApp(t, testConfig(t), out)
	defer a.close()

	runScript(t, a, out,
		"list",
		"history team-standup",
		"register",
		"track team-standup",
		"join team-standup",
		"list",
		"quit",
	)
	req.Eventually(func() bool {
		outcomes, err := a.outcomes.Last("team-standup", 0)
		return err == nil && len(outcomes) == 1
	}, time.Second, 10*time.Millisecond)

	output := out.String()
	req.Contains(output, "no chat rooms")
	req.Contains(output, "no history for chat room team-standup")
	req.Contains(output, "ROOM")
}

func TestShell_UsageAndUnknownCommands(t *testing.T) {
	req := require.New(t)
	out := &syncBuffer{}
	a := startApp(t, testConfig(t), out)
	defer a.close()

	runScript(t, a, out, "join", "dance", "remove ghost", "help", "stats")

	output := out.String()
	req.Contains(output, "usage: join <room>")
	req.Contains(output, `unknown command "dance"`)
	req.Contains(output, "chat room not found")
	req.Contains(output, "commands:")
	req.Contains(output, "shard-0")
	req.Contains(output, "Goroutines:")
}

func TestShell_RestoresAutoJoinRooms(t *testing.T) {
	req := require.New(t)
	config := testConfig(t)
	out := &syncBuffer{}

	// Given a room tracked online in a previous run
	first := startApp(t, config, out)
	runScript(t, first, out, "track random", "track team-standup --offline", "quit")
	first.close()

	// When the program starts again
	second := startApp(t, config, out)
	defer second.close()
	second.provider.Register()
	count, err := second.service.AutoJoin(context.Background())

	// Then only the online room is joined again
	req.NoError(err)
	req.Equal(1, count)
	req.Eventually(func() bool {
		return second.provider.Room("random").IsJoined()
	}, time.Second, 10*time.Millisecond)
}
