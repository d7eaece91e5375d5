package model

// Focus identifies the monitored system (or support role) an operator is
// assigned to. The stored values match the monitoring center's vocabulary.
type Focus string

const (
	FocusIRIS     Focus = "IRIS"
	FocusSituator Focus = "Situator"
	FocusApoio    Focus = "Apoio"
	FocusAmbos    Focus = "Ambos" // both systems at once, never counted as support
)

func (f Focus) IsValid() bool {
	return f == FocusIRIS || f == FocusSituator || f == FocusApoio || f == FocusAmbos
}

// ShiftKind is the operator's recurring schedule template
type ShiftKind string

const (
	ShiftTwelveByThirtySixDay   ShiftKind = "12x36_diurno"
	ShiftTwelveByThirtySixNight ShiftKind = "12x36_noturno"
	ShiftSixByEighteen          ShiftKind = "6x18"
)

func (k ShiftKind) IsValid() bool {
	return k == ShiftTwelveByThirtySixDay || k == ShiftTwelveByThirtySixNight || k == ShiftSixByEighteen
}

// IsRotating reports whether the kind alternates by rotation group
func (k ShiftKind) IsRotating() bool {
	return k == ShiftTwelveByThirtySixDay || k == ShiftTwelveByThirtySixNight
}

// RotationGroup is the alternating-duty cohort of a 12x36 operator.
// Empty means unassigned; an unassigned 12x36 operator is never scheduled.
type RotationGroup string

const (
	GroupA    RotationGroup = "A"
	GroupB    RotationGroup = "B"
	GroupNone RotationGroup = ""
)

// ParityRule decides which calendar-day parity rotation group A works on
type ParityRule string

const (
	ParityEven ParityRule = "pares"
	ParityOdd  ParityRule = "impares"
)

// Weekday abbreviations as stored on 6x18 operators
const (
	WeekdayMon = "seg"
	WeekdayTue = "ter"
	WeekdayWed = "qua"
	WeekdayThu = "qui"
	WeekdayFri = "sex"
	WeekdaySat = "sab"
	WeekdaySun = "dom"
)

// OperatorStatus is the manually-set live status shown on the TV panel.
// It is display state only and does not feed shift resolution.
type OperatorStatus string

const (
	StatusOperating OperatorStatus = "Em operação"
	StatusPaused    OperatorStatus = "Pausa"
	StatusOffShift  OperatorStatus = "Fora de turno"
)

func (s OperatorStatus) IsValid() bool {
	return s == StatusOperating || s == StatusPaused || s == StatusOffShift
}

// Operator is one monitoring-center operator and their shift template.
// Times are wall-clock "HH:MM" strings; empty means unset.
type Operator struct {
	ID            string
	Name          string
	Active        bool
	ShiftKind     ShiftKind
	RotationGroup RotationGroup // meaningful for 12x36 kinds only
	StartTime     string        // primary window; weekday default for 6x18
	EndTime       string
	SaturdayStart string // 6x18 only, optional
	SaturdayEnd   string
	SundayStart   string // 6x18 only, optional
	SundayEnd     string
	Weekdays      []string // 6x18 only: weekday abbreviations the primary window applies on
	DefaultFocus  Focus
	Color         string // presentation only
}

// FocusPeriod is a standing sub-interval of an operator's shift during
// which a specific focus applies
type FocusPeriod struct {
	ID          string
	OperatorID  string
	StartTime   string
	EndTime     string
	Focus       Focus
	Observation string
}

// ManualAllocation is an ad-hoc shift for a specific calendar date that
// fully supersedes the operator's automatic schedule while active
type ManualAllocation struct {
	ID          string
	OperatorID  string
	Date        string // "2006-01-02"; the date the shift starts on
	StartTime   string
	EndTime     string // end < start means the shift runs past midnight
	Focus       Focus  // initial focus
	Leader      string // responsible leader name, optional
	Observation string
	Periods     []AllocationPeriod
}

// AllocationPeriod is a focus sub-period scoped to a manual allocation
type AllocationPeriod struct {
	ID           string
	AllocationID string
	StartTime    string
	EndTime      string
	Focus        Focus
	Observation  string
}

// RotationConfig is the singleton parity + leader-name record
type RotationConfig struct {
	ParityRule      ParityRule
	DayLeaderA      string
	DayLeaderB      string
	NightLeader     string // undifferentiated fallback
	NightLeaderA    string
	NightLeaderB    string
	FacilityManager string // display only
}
