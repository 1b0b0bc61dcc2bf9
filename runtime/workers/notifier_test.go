package workers

import (
	"chat-rooms/mocks"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotifierWorker_DeliversInOrder(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	target := mocks.NewMockNotifier(ctrl)
	done := make(chan struct{})
	gomock.InOrder(
		target.EXPECT().ReportWarning("warning", "haveToBeConnectedToJoin").Times(1),
		target.EXPECT().ReportError("error", "failed").Do(func(string, string) { close(done) }).Times(1),
	)

	worker := NewNotifierWorker(log, target, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	worker.ReportWarning("warning", "haveToBeConnectedToJoin")
	worker.ReportError("error", "failed")

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("reports were not delivered")
	}
}

func TestNotifierWorker_DropsWhenFull(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	target := mocks.NewMockNotifier(ctrl)
	// Given a buffer of one and no running loop, only the first report survives
	target.EXPECT().ReportError("error", "first").Times(1)

	worker := NewNotifierWorker(log, target, 1)
	worker.ReportError("error", "first")
	worker.ReportError("error", "second")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = worker.Run(ctx)
}
