package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Kind is the direction of a clock event.
type Kind string

const (
	KindEntry Kind = "entrada"
	KindExit  Kind = "salida"
)

// Valid reports whether the kind is one of the two accepted values.
func (k Kind) Valid() bool {
	return k == KindEntry || k == KindExit
}

// Opposite returns the complement kind, used to tell a rejected employee
// what their next mark should be.
func (k Kind) Opposite() Kind {
	if k == KindEntry {
		return KindExit
	}
	return KindEntry
}

// ClockEvent is an accepted marcaje. Immutable once appended; the log is
// the single source of truth for every report.
type ClockEvent struct {
	ID             uuid.UUID
	EmployeeName   string
	Kind           Kind
	Date           string // YYYY-MM-DD, local calendar
	Time           string // HH:MM:SS, local clock
	Timestamp      int64  // unix seconds, authoritative for ordering
	Lat            float64
	Lon            float64
	DistanceMeters float64 // rounded to 2 decimals at admission
	Device         string
	Validated      bool
	Synced         bool
}

// FailedAttempt records every structurally valid clock request the
// pipeline rejected. Kept indefinitely for audit and alerting.
type FailedAttempt struct {
	ID           uuid.UUID
	EmployeeName string // may be empty when the employee is unknown
	Reason       string
	Timestamp    int64
	Lat          float64
	Lon          float64
	Device       string
}

// MarkRequest is a structurally valid clock request entering the
// validation pipeline.
type MarkRequest struct {
	Token        string
	EmployeeName string
	Kind         Kind
	Lat          float64
	Lon          float64
	Device       string
}

// MarkResult is the success payload for an accepted mark.
type MarkResult struct {
	Message        string
	LocalTime      string // 12-hour clock, e.g. "03:04 PM"
	DistanceMeters float64
	Event          ClockEvent
}

// NewClockEvent stamps an accepted request with the commit instant.
func NewClockEvent(req MarkRequest, now time.Time, distanceMeters float64) ClockEvent {
	return ClockEvent{
		ID:             uuid.New(),
		EmployeeName:   req.EmployeeName,
		Kind:           req.Kind,
		Date:           now.Format("2006-01-02"),
		Time:           now.Format("15:04:05"),
		Timestamp:      now.Unix(),
		Lat:            req.Lat,
		Lon:            req.Lon,
		DistanceMeters: distanceMeters,
		Device:         req.Device,
		Validated:      true,
	}
}
