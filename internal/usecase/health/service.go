package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the catalog is served but a backing store is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates there is nothing to serve.
	Unhealthy Status = "error"
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
	Status  Status
	Checks  map[string]CheckResult
	Records int
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogSizer
	db      DBPinger
}

// New creates a Service. db can be nil when the catalog is not backed by a store.
func New(catalog CatalogSizer, db DBPinger) *Service {
	return &Service{catalog: catalog, db: db}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	records := 0
	if s.catalog != nil {
		records = s.catalog.Len()
	}
	if records > 0 {
		checks["catalog"] = CheckOK
	} else {
		checks["catalog"] = CheckError
	}

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["database"] = CheckError
		} else {
			checks["database"] = CheckOK
		}
	}

	status := Healthy
	switch {
	case checks["catalog"] == CheckError:
		status = Unhealthy
	case checks["database"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks, Records: records}
}
