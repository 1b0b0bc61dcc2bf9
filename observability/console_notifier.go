package observability

import (
	"chat-rooms/contract"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/gookit/color"
)

var _ contract.Notifier = (*ConsoleNotifier)(nil)

// ConsoleNotifier shows warnings and errors as "[TITLE] message" lines on a terminal.
type ConsoleNotifier struct {
	mu      sync.Mutex
	out     io.Writer
	log     *slog.Logger
	colours bool
	warning color.Style
	failure color.Style
}

func NewConsoleNotifier(out io.Writer, log *slog.Logger, colours bool) *ConsoleNotifier {
	return &ConsoleNotifier{
		out:     out,
		log:     log,
		colours: colours,
		warning: color.New(color.FgYellow, color.OpBold),
		failure: color.New(color.FgRed, color.OpBold),
	}
}

func (n *ConsoleNotifier) ReportWarning(title, message string) {
	n.write(n.warning, title, message)
	n.log.Debug("Warning shown", "title", title, "message", message)
}

func (n *ConsoleNotifier) ReportError(title, message string) {
	n.write(n.failure, title, message)
	n.log.Debug("Error shown", "title", title, "message", message)
}

func (n *ConsoleNotifier) write(style color.Style, title, message string) {
	header := fmt.Sprintf("[%s]", strings.ToUpper(title))
	if n.colours {
		header = style.Render(header)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, err := fmt.Fprintf(n.out, "%s %s\n", header, message); err != nil {
		n.log.Error("Failed to write notification", "error", err)
	}
}
