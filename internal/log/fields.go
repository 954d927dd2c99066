package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldSessionID = "session_id"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldSet       = "record_set"
	FieldRows      = "rows"
	FieldUsername  = "username"
	FieldMonth     = "month"
	FieldAmount    = "amount"
	FieldGoalID    = "goal_id"
	FieldThreshold = "threshold"
	FieldIndex     = "index"
	FieldPath      = "path"
	FieldBackend   = "backend"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentAuth    = "auth"
	ComponentExpense = "expense"
	ComponentBudget  = "budget"
	ComponentSavings = "savings"
	ComponentExport  = "export"
	ComponentMenu    = "menu"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpAppend   = "append"
	OpUpsert   = "upsert"
	OpRepair   = "repair"
	OpExport   = "export"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
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

// WithSet adds the record set name and row count
func (f LogFields) WithSet(set string, rows int) LogFields {
	f[FieldSet] = set
	f[FieldRows] = rows
	return f
}

// WithBudgetKey adds the (username, month) budget key
func (f LogFields) WithBudgetKey(username, month string) LogFields {
	f[FieldUsername] = username
	f[FieldMonth] = month
	return f
}

// WithGoal adds savings goal fields
func (f LogFields) WithGoal(username string, goalID int) LogFields {
	f[FieldUsername] = username
	f[FieldGoalID] = goalID
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
