package main

import (
	"bufio"
	"chat-rooms/domain"
	"chat-rooms/observability"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

const historyLimit = 20

// lockedWriter serialises the shell output with the notifications printed by the notifier.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// shell reads one command per line until quit or end of input.
type shell struct {
	app *app
	in  io.Reader
	out io.Writer
}

func newShell(a *app, in io.Reader, out io.Writer) *shell {
	return &shell{app: a, in: in, out: out}
}

func (s *shell) run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	s.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && s.exec(ctx, fields[0], fields[1:]) {
			return nil
		}
		s.prompt()
	}
	return scanner.Err()
}

// exec runs one command and reports whether the shell must stop.
func (s *shell) exec(ctx context.Context, command string, args []string) bool {
	t := s.app.localizer.Text
	name := strings.Join(args, " ")
	switch command {
	case "quit", "exit":
		return true
	case "help":
		s.println(t("cli.help"))
	case "list":
		s.list()
	case "sessions":
		s.sessions()
	case "stats":
		s.stats()
	case "register":
		s.app.provider.Register()
		s.println(t("cli.providerRegistered"))
	case "unregister":
		s.app.provider.Unregister()
		s.app.rooms.Refresh()
		s.println(t("cli.providerUnregistered"))
	case "track":
		s.track(args)
	case "connect":
		if s.requireName(command, name) {
			s.connect(name)
		}
	case "history":
		if s.requireName(command, name) {
			s.history(name)
		}
	default:
		action, err := domain.ParseAction(command)
		if err != nil {
			s.println(t("cli.unknownCommand", command))
			return false
		}
		if s.requireName(command, name) {
			s.perform(ctx, action, name)
		}
	}
	return false
}

// perform dispatches the action and waits for its outcome.
// Failures are reported by the notifier, so only successes are printed here.
func (s *shell) perform(ctx context.Context, action domain.Action, name string) {
	done, err := s.app.service.Perform(ctx, action, name)
	if err != nil {
		s.println(err.Error())
		return
	}
	select {
	case <-ctx.Done():
	case outcome, ok := <-done:
		if !ok || !outcome.Succeeded() {
			return
		}
		if action == domain.ActionJoin {
			if entry, err := s.app.rooms.FindByName(name); err == nil {
				session := s.app.sessions.OpenSession(entry)
				s.println(s.app.localizer.Text("cli.sessionOpened", session.RoomName))
			}
		}
		s.println(s.app.localizer.Text("cli.actionDone", action.String(), outcome.RoomName))
	}
}

func (s *shell) track(args []string) {
	connect := true
	names := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--offline" {
			connect = false
			continue
		}
		names = append(names, arg)
	}
	name := strings.Join(names, " ")
	if !s.requireName("track", name) {
		return
	}
	if _, err := s.app.service.Track(name, connect); err != nil {
		s.println(err.Error())
		return
	}
	s.println(s.app.localizer.Text("cli.roomTracked", name))
}

func (s *shell) connect(name string) {
	if err := s.app.service.Connect(name); err != nil {
		s.println(err.Error())
		return
	}
	s.println(s.app.localizer.Text("cli.roomConnected", name))
}

func (s *shell) list() {
	rows := s.app.service.Rooms()
	if len(rows) == 0 {
		s.println(s.app.localizer.Text("cli.noRooms"))
		return
	}
	renderRooms(s.out, rows)
}

func (s *shell) stats() {
	renderQueues(s.out, s.app.dispatcher.QueueStats())
	stats, err := observability.SelfStats()
	if err != nil {
		s.app.log.Warn("Failed to read process stats", "error", err)
		return
	}
	s.println(stats.String())
}

func (s *shell) sessions() {
	sessions := s.app.sessions.Sessions()
	if len(sessions) == 0 {
		s.println(s.app.localizer.Text("cli.noSessions"))
		return
	}
	table := newTable(s.out, "Room", "Session")
	for _, session := range sessions {
		table.Append([]string{session.RoomName, session.ID})
	}
	table.Render()
}

func (s *shell) history(name string) {
	outcomes, err := s.app.outcomes.Last(domain.NewRoomID(name), historyLimit)
	if err != nil {
		s.println(err.Error())
		return
	}
	if len(outcomes) == 0 {
		s.println(s.app.localizer.Text("cli.noHistory", name))
		return
	}
	renderOutcomes(s.out, outcomes)
}

func (s *shell) requireName(command, name string) bool {
	if name != "" {
		return true
	}
	s.println(s.app.localizer.Text("cli.usage", command))
	return false
}

func (s *shell) prompt() {
	_, _ = fmt.Fprint(s.out, s.app.localizer.Text("cli.prompt"))
}

func (s *shell) println(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}
