// Package alert pushes rejected clock attempts to Kafka so staff can
// follow repeated failures in near real time. Publishing is decoupled
// from the validation pipeline through a buffered channel; a full buffer
// drops the alert rather than slowing a mark down.
package alert

import (
	"context"
	"log/slog"

	"asistencia/internal/attendance"
)

// Publisher delivers a single failed attempt to the alert channel.
type Publisher interface {
	Publish(ctx context.Context, attempt attendance.FailedAttempt) error
}

const defaultBuffer = 256

// Notifier implements attendance.AttemptSink. Notify never blocks.
type Notifier struct {
	inbox  chan attendance.FailedAttempt
	logger *slog.Logger
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{
		inbox:  make(chan attendance.FailedAttempt, defaultBuffer),
		logger: logger,
	}
}

func (n *Notifier) Notify(attempt attendance.FailedAttempt) {
	select {
	case n.inbox <- attempt:
	default:
		n.logger.Warn("alert buffer full, dropping attempt",
			"employee", attempt.EmployeeName, "reason", attempt.Reason)
	}
}

// Worker drains a Notifier's inbox into a Publisher. Publish failures
// are logged and skipped; the log remains authoritative either way.
type Worker struct {
	notifier  *Notifier
	publisher Publisher
	logger    *slog.Logger
}

func NewWorker(notifier *Notifier, publisher Publisher, logger *slog.Logger) *Worker {
	return &Worker{notifier: notifier, publisher: publisher, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case attempt := <-w.notifier.inbox:
			if err := w.publisher.Publish(ctx, attempt); err != nil {
				w.logger.ErrorContext(ctx, "failed to publish alert",
					"employee", attempt.EmployeeName, "error", err)
			}
		}
	}
}
