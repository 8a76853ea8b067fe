package report

// Two classification rule sets coexist on purpose: the hours report and
// the quincena report feed different payroll columns, and unifying them
// would silently change pay outputs. Both classify on the raw duration,
// before display rounding.

// DayClass labels a session for the hours report.
type DayClass string

const (
	DayComplete   DayClass = "completa"
	DayPartial    DayClass = "parcial"
	DayIncomplete DayClass = "incompleta"
)

// ClassifyDay applies the generic daily thresholds.
func ClassifyDay(hours float64) DayClass {
	switch {
	case hours >= 6:
		return DayComplete
	case hours >= 3:
		return DayPartial
	default:
		return DayIncomplete
	}
}

// TurnoClass labels a session for the quincena shift report.
type TurnoClass string

const (
	TurnoCompleto   TurnoClass = "completo"
	TurnoMedio      TurnoClass = "medio"
	TurnoIncompleto TurnoClass = "incompleto"
)

// ClassifyTurno applies the pay-period thresholds. Open sessions are not
// classified here; they are tallied separately as entradas sin salida.
func ClassifyTurno(hours float64) TurnoClass {
	switch {
	case hours >= 6:
		return TurnoCompleto
	case hours >= 3:
		return TurnoMedio
	default:
		return TurnoIncompleto
	}
}

// quincenaDays and restDays define the built-in 15-day period shape used
// by the faltas computation.
const (
	quincenaDays = 15
	restDays     = 2
)

// Faltas computes absences for a 15-day pay period.
func Faltas(daysWorked int) int {
	faltas := quincenaDays - daysWorked - restDays
	if faltas < 0 {
		return 0
	}
	return faltas
}
