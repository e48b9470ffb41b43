package batch

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of validating and indexing one document of a batch.
type Result struct {
	id     string
	tenant string
	status ItemStatus
	err    error
}

// NewOK creates a successful batch result.
func NewOK(id, tenant string) Result { return Result{id: id, tenant: tenant, status: StatusOK} }

// NewError creates a failed batch result.
func NewError(id, tenant string, err error) Result {
	return Result{id: id, tenant: tenant, status: StatusError, err: err}
}

// ID returns the document identifier.
func (r Result) ID() string { return r.id }

// Tenant returns the tenant the document was submitted for.
func (r Result) Tenant() string { return r.tenant }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Tally counts succeeded and failed items.
func Tally(results []Result) (succeeded, failed int) {
	for _, r := range results {
		if r.status == StatusOK {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
