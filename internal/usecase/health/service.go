package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status    Status
	Checks    map[string]CheckResult
	Documents int
}

// Service coordinates health checks.
type Service struct {
	index   IndexSizer
	archive ArchivePinger
}

// New creates a Service. archive can be nil when no archive is configured.
func New(index IndexSizer, archive ArchivePinger) *Service {
	return &Service{index: index, archive: archive}
}

// Check runs health checks against all components.
// The in-memory index is always available.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{"index": CheckOK}

	if s.archive != nil {
		if err := s.archive.Ping(ctx); err != nil {
			checks["archive"] = CheckError
		} else {
			checks["archive"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Documents: s.index.Len()}
}
