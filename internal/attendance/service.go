// Package attendance implements the clock-event validation pipeline and
// the append-only event log it commits to.
package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"asistencia/internal/attendance/metrics"
	"asistencia/internal/geo"
	pkgerrors "asistencia/pkg/errors"
	"asistencia/pkg/requestcontext"
)

// TokenVerifier validates a scanned QR and returns its token id. Consume
// marks the id used (a no-op unless single-use mode is on); it runs at
// commit time, not at verification time, so rejections later in the
// pipeline leave the token spendable for a retry.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
	Consume(ctx context.Context, tokenID string) error
}

// ScheduleGate decides whether the employee may clock at the given time.
type ScheduleGate interface {
	Check(ctx context.Context, employeeName string, now time.Time) error
}

// AttemptSink receives rejected attempts for out-of-band alerting. Must
// not block.
type AttemptSink interface {
	Notify(attempt FailedAttempt)
}

// Site holds the fixed coordinates and acceptance radius marks are
// validated against.
type Site struct {
	Lat     float64
	Lon     float64
	RadiusM float64
}

// Service runs the admission pipeline: token, GPS, schedule, duplicate,
// commit. Each check short-circuits; every rejection is durably recorded
// as a FailedAttempt and nothing is partially written.
type Service struct {
	site     Site
	tokens   TokenVerifier
	gate     ScheduleGate
	events   EventStore
	attempts AttemptStore
	sink     AttemptSink
	logger   *slog.Logger
	metrics  *metrics.Metrics
	perEmp   *keyedMutex
	tracer   trace.Tracer
}

func NewService(
	site Site,
	tokens TokenVerifier,
	gate ScheduleGate,
	events EventStore,
	attempts AttemptStore,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		site:     site,
		tokens:   tokens,
		gate:     gate,
		events:   events,
		attempts: attempts,
		logger:   logger,
		metrics:  m,
		perEmp:   newKeyedMutex(),
		tracer:   otel.Tracer("asistencia/attendance"),
	}
}

// SetAttemptSink wires an optional non-blocking alert sink.
func (s *Service) SetAttemptSink(sink AttemptSink) {
	s.sink = sink
}

// Mark validates and commits one clock request. The duplicate check and
// the append run under a per-employee lock so two marks for the same
// employee can never interleave between read and write.
func (s *Service) Mark(ctx context.Context, req MarkRequest) (MarkResult, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveMarkLatency(time.Since(start)) }()

	ctx, span := s.tracer.Start(ctx, "attendance.Mark", trace.WithAttributes(
		attribute.String("employee", req.EmployeeName),
		attribute.String("kind", string(req.Kind)),
	))
	defer span.End()

	now := requestcontext.Now(ctx)

	// 1. Token.
	tokenID, err := s.tokens.Verify(ctx, req.Token)
	if err != nil {
		if pkgerrors.CodeOf(err) == pkgerrors.CodeInternal {
			return MarkResult{}, s.internal(ctx, "verify token", err)
		}
		return MarkResult{}, s.reject(ctx, req, now, err)
	}

	// 2. GPS proximity.
	distance := geo.DistanceMeters(req.Lat, req.Lon, s.site.Lat, s.site.Lon)
	span.SetAttributes(attribute.Float64("distance_m", distance))
	if distance > s.site.RadiusM {
		err := pkgerrors.New(pkgerrors.CodeOutOfRange,
			fmt.Sprintf("Debes estar en el restaurante para marcar. Distancia: %.0fm", distance))
		return MarkResult{}, s.reject(ctx, req, now, err)
	}

	// 3. Schedule window.
	if err := s.gate.Check(ctx, req.EmployeeName, now); err != nil {
		if pkgerrors.CodeOf(err) == pkgerrors.CodeInternal {
			return MarkResult{}, s.internal(ctx, "check schedule", err)
		}
		return MarkResult{}, s.reject(ctx, req, now, err)
	}

	// 4+5. Duplicate guard and commit, serialized per employee.
	s.perEmp.Lock(req.EmployeeName)
	defer s.perEmp.Unlock(req.EmployeeName)

	last, found, err := s.events.LastByEmployee(ctx, req.EmployeeName)
	if err != nil {
		return MarkResult{}, s.internal(ctx, "read last clock event", err)
	}
	// A first-ever mark is never a duplicate, whatever its kind.
	if found && last.Kind == req.Kind {
		err := pkgerrors.New(pkgerrors.CodeDuplicateMark,
			fmt.Sprintf("Ya marcaste %s anteriormente. Marca %s.", req.Kind, req.Kind.Opposite()))
		return MarkResult{}, s.reject(ctx, req, now, err)
	}

	// Consumption sits inside the lock with the commit: a mark rejected at
	// any earlier step never spends the token.
	if err := s.tokens.Consume(ctx, tokenID); err != nil {
		if pkgerrors.CodeOf(err) == pkgerrors.CodeInternal {
			return MarkResult{}, s.internal(ctx, "consume token", err)
		}
		return MarkResult{}, s.reject(ctx, req, now, err)
	}

	event := NewClockEvent(req, now, math.Round(distance*100)/100)
	if err := s.events.Append(ctx, event); err != nil {
		return MarkResult{}, s.internal(ctx, "append clock event", err)
	}

	s.metrics.IncrementAccepted(string(req.Kind))
	s.logger.InfoContext(ctx, "mark accepted",
		"employee", req.EmployeeName,
		"kind", req.Kind,
		"distance_m", event.DistanceMeters,
		"request_id", requestcontext.RequestID(ctx),
	)

	return MarkResult{
		Message:        fmt.Sprintf("%s: %s registrada", req.EmployeeName, title(string(req.Kind))),
		LocalTime:      now.Format("03:04 PM"),
		DistanceMeters: event.DistanceMeters,
		Event:          event,
	}, nil
}

// MarksForDate lists the events of one calendar date, newest first.
func (s *Service) MarksForDate(ctx context.Context, date string) ([]ClockEvent, error) {
	events, err := s.events.ListByDate(ctx, date)
	if err != nil {
		return nil, s.internal(ctx, "list clock events by date", err)
	}
	return events, nil
}

// MarksForEmployee lists an employee's events over the lookback window,
// newest first. A non-positive lookback defaults to 30 days.
func (s *Service) MarksForEmployee(ctx context.Context, employeeName string, lookbackDays int) ([]ClockEvent, error) {
	if lookbackDays <= 0 {
		lookbackDays = 30
	}
	from := requestcontext.Now(ctx).AddDate(0, 0, -lookbackDays).Format("2006-01-02")
	events, err := s.events.ListByEmployeeSince(ctx, employeeName, from)
	if err != nil {
		return nil, s.internal(ctx, "list clock events by employee", err)
	}
	return events, nil
}

// FailedAttemptsSince exposes the rejection log for the admin audit view.
func (s *Service) FailedAttemptsSince(ctx context.Context, fromTimestamp int64) ([]FailedAttempt, error) {
	attempts, err := s.attempts.ListSince(ctx, fromTimestamp)
	if err != nil {
		return nil, s.internal(ctx, "list failed attempts", err)
	}
	return attempts, nil
}

// reject records the failed attempt, counts it, and returns the original
// domain error for the transport to translate.
func (s *Service) reject(ctx context.Context, req MarkRequest, now time.Time, cause error) error {
	code := pkgerrors.CodeOf(cause)
	attempt := FailedAttempt{
		ID:           uuid.New(),
		EmployeeName: req.EmployeeName,
		Reason:       cause.Error(),
		Timestamp:    now.Unix(),
		Lat:          req.Lat,
		Lon:          req.Lon,
		Device:       req.Device,
	}
	if err := s.attempts.Append(ctx, attempt); err != nil {
		// The caller still gets the validation error; losing one audit row
		// must not turn a rejection into a 500.
		s.logger.ErrorContext(ctx, "failed to record attempt", "error", err)
	}
	if s.sink != nil {
		s.sink.Notify(attempt)
	}
	s.metrics.IncrementRejected(string(code))
	s.logger.WarnContext(ctx, "mark rejected",
		"employee", req.EmployeeName,
		"kind", req.Kind,
		"reason", code,
		"request_id", requestcontext.RequestID(ctx),
	)
	return cause
}

func (s *Service) internal(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, op, "error", err, "request_id", requestcontext.RequestID(ctx))
	return pkgerrors.New(pkgerrors.CodeInternal, "Error interno del servidor")
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
