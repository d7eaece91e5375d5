package db

// Operator represents a database operator record. Times are "HH:MM"
// strings and dates are "2006-01-02"; empty means unset.
type Operator struct {
	ID            string
	Name          string
	Active        bool
	ShiftKind     string
	RotationGroup string // nullable: empty for 6x18 operators
	StartTime     string
	EndTime       string
	SaturdayStart string // nullable
	SaturdayEnd   string // nullable
	SundayStart   string // nullable
	SundayEnd     string // nullable
	Weekdays      string // comma-separated abbreviations, e.g. "seg,ter,qua"
	DefaultFocus  string
	Color         string
}

// FocusPeriod represents a database standing focus-period record
type FocusPeriod struct {
	ID          string
	OperatorID  string
	StartTime   string
	EndTime     string
	Focus       string
	Observation string // nullable
	Position    int    // insertion order; resolution scans in this order
}

// ManualAllocation represents a database manual-allocation record
type ManualAllocation struct {
	ID          string
	OperatorID  string
	Date        string
	StartTime   string
	EndTime     string
	Focus       string
	Leader      string // nullable
	Observation string // nullable
}

// AllocationPeriod represents a database focus sub-period scoped to a
// manual allocation
type AllocationPeriod struct {
	ID           string
	AllocationID string
	StartTime    string
	EndTime      string
	Focus        string
	Observation  string // nullable
	Position     int
}

// RotationConfig represents the singleton rotation-parity record
type RotationConfig struct {
	ParityRule      string
	DayLeaderA      string
	DayLeaderB      string
	NightLeader     string
	NightLeaderA    string
	NightLeaderB    string
	FacilityManager string
}

// OperatorStatus represents a manually-set live status record
type OperatorStatus struct {
	OperatorID string
	Status     string
	UpdatedAt  string // RFC3339
}
