package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for the per-invocation identifier.
	FieldRunID = "run_id"
	// FieldEventType classifies warnings so they can be grepped across runs.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to do next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldSource is the standardized key for the dictionary resource path.
	FieldSource = "source"
	// FieldLine is the standardized key for a 1-based input or resource line number.
	FieldLine = "line"
)
