package domain

// OutcomeKind classifies what happened to one row.
type OutcomeKind string

const (
	OutcomeSuccess         OutcomeKind = "success"
	OutcomeSiteNotFound    OutcomeKind = "site_not_found"
	OutcomeRemoteRejected  OutcomeKind = "remote_rejected"
	OutcomeTransportFailed OutcomeKind = "transport_failed"
)

// RowOutcome is the terminal result of processing one row.
type RowOutcome struct {
	Kind   OutcomeKind
	Reason string
}

// RowError pairs a failed outcome with the input row it belongs to.
type RowError struct {
	Row     int
	Outcome RowOutcome
}

// RowWarning records a lossy coercion that did not fail the row.
type RowWarning struct {
	Row     int
	Message string
}

// Advisory flags a row whose requested site name already belonged to another
// site: the room was attached to that site instead of renaming the one the
// row referenced by id.
type Advisory struct {
	Row           int
	RequestedName string
	FromSiteID    string
	ToSiteID      string
}

// Report is the aggregate result of one batch run.
type Report struct {
	RunID      string
	Succeeded  int
	Failed     int
	Errors     []RowError
	Warnings   []RowWarning
	Advisories []Advisory
}

// Total returns the number of rows the batch processed.
func (r *Report) Total() int {
	return r.Succeeded + r.Failed
}
