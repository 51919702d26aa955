package domain

// WarningKind names the detector that produced a warning.
type WarningKind string

const (
	KindHighAmount       WarningKind = "high-amount"
	KindGlobalSpike      WarningKind = "global-spike"
	KindDormantBurst     WarningKind = "dormant-then-burst"
	KindOddHour          WarningKind = "odd-hour"
	KindWeekendSpike     WarningKind = "weekend-spike"
	KindGeoShift         WarningKind = "geo-shift"
	KindVelocityDay      WarningKind = "velocity-day"
	KindMicroVelocity    WarningKind = "micro-velocity"
	KindBurstCategory    WarningKind = "burst-category"
	KindThresholdSplit   WarningKind = "threshold-split"
	KindNewCategory      WarningKind = "new-category"
	KindEscalating       WarningKind = "escalating"
	KindDuplicateCluster WarningKind = "duplicate"
)

// Warning is one flagged pattern instance.
type Warning struct {
	Kind WarningKind `json:"kind"`
	// Refs holds indices into the analyzed batch.
	Refs []int `json:"transaction_refs"`
	// Line is the rendered report line.
	Line string `json:"line"`
}

// FraudReport is the result of one detection run.
type FraudReport struct {
	RunID            string    `json:"run_id"`
	Source           string    `json:"source"`
	Owner            string    `json:"owner,omitempty"`
	TransactionCount int       `json:"transaction_count"`
	Warnings         []Warning `json:"warnings"`
	// Error is set when the run produced no verdict, e.g. "no data".
	Error string `json:"error,omitempty"`
}

// CategoryTotal is the spend accumulated for one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthTotal is the spend accumulated for one YYYY-MM prefix.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// SpendingReport is the summary printed by the report command.
type SpendingReport struct {
	Source         string          `json:"source"`
	CategoryTotals []CategoryTotal `json:"category_totals"`
	TopExpenses    []Transaction   `json:"top_expenses"`
	Monthly        []MonthTotal    `json:"monthly"`
}
