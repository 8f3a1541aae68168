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

// Report aggregates health check results.
type Report struct {
	Status         Status
	IndexConnected bool
	BackendCount   int
}

// Service coordinates health checks. It gives the transport layer a
// capability check to poll instead of discovering connectivity problems on
// the first real request.
type Service struct {
	idx BackendLister
}

// New creates a Service.
func New(idx BackendLister) *Service {
	return &Service{idx: idx}
}

// Check probes the index backend.
func (s *Service) Check(ctx context.Context) Report {
	backends, err := s.idx.ListBackends(ctx)
	if err != nil {
		return Report{Status: Degraded}
	}
	return Report{Status: Healthy, IndexConnected: true, BackendCount: len(backends)}
}
