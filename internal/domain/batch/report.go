// Package batch models per-item outcomes of bulk index operations.
package batch

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of processing one item in a batch operation.
type Result struct {
	id     string
	status ItemStatus
	err    error
}

// NewOK creates a successful batch result.
func NewOK(id string) Result { return Result{id: id, status: StatusOK} }

// NewError creates a failed batch result.
func NewError(id string, err error) Result { return Result{id: id, status: StatusError, err: err} }

// ID returns the item identifier.
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// ItemError pairs an item identifier with its failure message.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Report summarizes a bulk operation. There is no rollback: failed
// items are reported while the rest proceed.
type Report struct {
	Total   int         `json:"total"`
	Success int         `json:"success"`
	Failed  int         `json:"failed"`
	Errors  []ItemError `json:"errors,omitempty"`
}

// Summarize folds per-item results into a Report.
func Summarize(results []Result) Report {
	rep := Report{Total: len(results)}
	for _, r := range results {
		if r.status == StatusOK {
			rep.Success++
			continue
		}
		rep.Failed++
		msg := "unknown error"
		if r.err != nil {
			msg = r.err.Error()
		}
		rep.Errors = append(rep.Errors, ItemError{ID: r.id, Error: msg})
	}
	return rep
}
