package report

// Session is one employee-day reconstructed from the event log: first
// entry of the day paired with the last exit. Never persisted; always
// recomputed from raw events.
type Session struct {
	Date    string
	Entry   string // HH:MM:SS of the first entry
	Exit    string // HH:MM:SS of the last exit, empty while open
	EntryTS int64
	ExitTS  int64
	Hours   float64 // rounded to 2 decimals, 0 while open
	Open    bool    // entries but no exit that day
}

// DayDetail is a classified session as it appears in report payloads.
type DayDetail struct {
	Date  string  `json:"fecha"`
	Entry string  `json:"entrada"`
	Exit  string  `json:"salida"`
	Hours float64 `json:"horas"`
	Class string  `json:"clasificacion,omitempty"`
	Turno string  `json:"tipo_turno,omitempty"`
}

// EmployeeHours is one row of the hours report.
type EmployeeHours struct {
	Employee   string      `json:"empleado"`
	TotalHours float64     `json:"total_horas"`
	TotalDays  int         `json:"total_dias"`
	Detail     []DayDetail `json:"detalle"`
}

// PayPeriod is the quincena shift summary for one employee.
type PayPeriod struct {
	Employee          string      `json:"empleado"`
	TotalHours        float64     `json:"total_horas"`
	DiasCompletos     int         `json:"dias_completos"`
	MediosTurnos      int         `json:"medios_turnos"`
	Faltas            int         `json:"faltas"`
	EntradasSinSalida int         `json:"entradas_sin_salida"`
	Detail            []DayDetail `json:"detalle"`
}

// Severity grades anomaly findings.
type Severity string

const (
	SeverityLow    Severity = "baja"
	SeverityMedium Severity = "media"
	SeverityHigh   Severity = "alta"
)

// AnomalyKind names the patterns the scan looks for.
type AnomalyKind string

const (
	AnomalyOpenSession AnomalyKind = "entrada_sin_salida"
	AnomalyShortShift  AnomalyKind = "jornada_corta"
	AnomalyLongShift   AnomalyKind = "jornada_larga"
)

// Anomaly is one finding from the session scan.
type Anomaly struct {
	Employee string      `json:"empleado"`
	Kind     AnomalyKind `json:"tipo"`
	Date     string      `json:"fecha,omitempty"`
	Hours    float64     `json:"horas,omitempty"`
	Count    int         `json:"cantidad,omitempty"`
	Severity Severity    `json:"gravedad"`
}

// ExportResult reports a completed CSV export.
type ExportResult struct {
	Filename    string `json:"filename"`
	RecordCount int    `json:"registros"`
}
