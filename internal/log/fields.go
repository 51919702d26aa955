package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldSource    = "source"
	FieldOwner     = "owner"
	FieldCount     = "count"
	FieldSkipped   = "skipped"
	FieldWarnings  = "warnings"
	FieldDuration  = "duration_ms"
	FieldLine      = "line"
	FieldReason    = "reason"
	FieldError     = "error"
	FieldOperation = "operation"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentDetection = "detection"
	ComponentReport    = "report"
	ComponentImport    = "import"
	ComponentCSV       = "csv"
	ComponentStorage   = "storage"
	ComponentLedger    = "ledger"
	ComponentSplitter  = "splitter"
)

// Operations defines standard operation names
const (
	OpLoad    = "load"
	OpSave    = "save"
	OpAnalyze = "analyze"
	OpMigrate = "migrate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithLedger adds the ledger source and owner
func (f LogFields) WithLedger(source, owner string) LogFields {
	f[FieldSource] = source
	if owner != "" {
		f[FieldOwner] = owner
	}
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
