package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod  = "method"
	AttrPath    = "path"
	AttrStatus  = "status"
	AttrSource  = "source"
	AttrOutcome = "outcome"
	AttrBackend = "backend"
)

// Fetch and refresh outcomes.
const (
	OutcomeChanged   = "changed"
	OutcomeUnchanged = "unchanged"
	OutcomeError     = "error"
	OutcomeSkipped   = "skipped"
	OutcomeEmpty     = "empty"
)
