package logging

const (
	// FieldComponent is the structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one load, generate or export run.
	FieldRunID = "run_id"
	// FieldOperation names the run kind (load, generate, export_page, export_all).
	FieldOperation = "operation"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells an operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldAlert flags anomalies that should stand out.
	FieldAlert = "alert"
	// FieldFamily and FieldGenus carry the active taxonomic selection.
	FieldFamily = "family"
	FieldGenus  = "genus"
	// FieldPage is a 1-based page number.
	FieldPage = "page"
	// FieldProgressPercent is the completion percentage of a long run.
	FieldProgressPercent = "progress_percent"
)
