package workers

import (
	"chat-rooms/contract"
	"chat-rooms/errors"
	"context"
	"log/slog"
)

var (
	_ contract.Notifier = (*NotifierWorker)(nil)
	_ contract.Worker   = (*NotifierWorker)(nil)
)

type severity int

const (
	severityWarning severity = iota
	severityError
)

type report struct {
	severity severity
	title    string
	message  string
}

// NotifierWorker hands every report to the wrapped Notifier from a single goroutine,
// whatever goroutine produced it.
type NotifierWorker struct {
	log     *slog.Logger
	target  contract.Notifier
	reports chan report
}

func NewNotifierWorker(log *slog.Logger, target contract.Notifier, bufferSize int) *NotifierWorker {
	return &NotifierWorker{log: log, target: target, reports: make(chan report, bufferSize)}
}

func (w *NotifierWorker) ReportWarning(title, message string) {
	w.enqueue(report{severity: severityWarning, title: title, message: message})
}

func (w *NotifierWorker) ReportError(title, message string) {
	w.enqueue(report{severity: severityError, title: title, message: message})
}

func (w *NotifierWorker) enqueue(r report) {
	select {
	case w.reports <- r:
	default:
		w.log.Warn(errors.ErrNotificationDropped.Error(), "title", r.title, "message", r.message)
	}
}

func (w *NotifierWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return nil
		case r := <-w.reports:
			w.deliver(r)
		}
	}
}

// drain delivers what was queued before shutdown.
func (w *NotifierWorker) drain() {
	for {
		select {
		case r := <-w.reports:
			w.deliver(r)
		default:
			return
		}
	}
}

func (w *NotifierWorker) deliver(r report) {
	switch r.severity {
	case severityWarning:
		w.target.ReportWarning(r.title, r.message)
	default:
		w.target.ReportError(r.title, r.message)
	}
}
