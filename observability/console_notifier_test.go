package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestConsoleNotifier(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	t.Run("should print a warning line", func(t *testing.T) {
		req := require.New(t)
		var out bytes.Buffer
		notifier := NewConsoleNotifier(&out, log, false)

		notifier.ReportWarning("Warning", "You have to be connected to join this chat room.")

		req.Equal("[WARNING] You have to be connected to join this chat room.\n", out.String())
	})

	t.Run("should print error lines in order", func(t *testing.T) {
		req := require.New(t)
		var out bytes.Buffer
		notifier := NewConsoleNotifier(&out, log, false)

		notifier.ReportError("Error", "Chat room team-standup is already joined.")
		notifier.ReportError("Error", "Failed to join chat room random.")

		req.Equal("[ERROR] Chat room team-standup is already joined.\n[ERROR] Failed to join chat room random.\n", out.String())
	})
}
