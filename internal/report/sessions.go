package report

import (
	"math"
	"sort"

	"asistencia/internal/attendance"
)

// buildSessions reconstructs per-day sessions from one employee's events.
// Within a day the entry is the first entry by timestamp and the exit the
// last exit, which makes the pairing tolerant of spurious extra taps.
// Days holding only exits produce no session.
func buildSessions(events []attendance.ClockEvent) []Session {
	byDate := make(map[string][]attendance.ClockEvent)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var sessions []Session
	for _, date := range dates {
		day := byDate[date]
		sort.Slice(day, func(i, j int) bool { return day[i].Timestamp < day[j].Timestamp })

		var entry, exit *attendance.ClockEvent
		for i := range day {
			switch day[i].Kind {
			case attendance.KindEntry:
				if entry == nil {
					entry = &day[i]
				}
			case attendance.KindExit:
				exit = &day[i]
			}
		}
		if entry == nil {
			continue
		}

		s := Session{Date: date, Entry: entry.Time, EntryTS: entry.Timestamp}
		if exit == nil {
			s.Open = true
		} else {
			s.Exit = exit.Time
			s.ExitTS = exit.Timestamp
			s.Hours = round2(float64(exit.Timestamp-entry.Timestamp) / 3600)
		}
		sessions = append(sessions, s)
	}
	return sessions
}

// rawHours returns the unrounded duration; classification uses this,
// display uses the rounded Session.Hours.
func rawHours(s Session) float64 {
	if s.Open {
		return 0
	}
	return float64(s.ExitTS-s.EntryTS) / 3600
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// groupByEmployee splits a ListRange result (ordered by employee, then
// timestamp) into per-employee slices, preserving encounter order.
func groupByEmployee(events []attendance.ClockEvent) (map[string][]attendance.ClockEvent, []string) {
	grouped := make(map[string][]attendance.ClockEvent)
	var order []string
	for _, e := range events {
		if _, ok := grouped[e.EmployeeName]; !ok {
			order = append(order, e.EmployeeName)
		}
		grouped[e.EmployeeName] = append(grouped[e.EmployeeName], e)
	}
	return grouped, order
}
