package domain

import "fmt"

// HealthStatus is the outcome of one doctor check.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck is one diagnostic line: storage, health import, reminders and so on.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport collects the checks of one doctor run.
type HealthReport struct {
	Checks []HealthCheck
}

// Failed reports whether any check ended in error.
func (r HealthReport) Failed() bool {
	return r.Count(HealthError) > 0
}

// Count returns the number of checks with status.
func (r HealthReport) Count(status HealthStatus) int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == status {
			n++
		}
	}
	return n
}

// Summary renders the per-status totals, e.g. "3 ok, 1 warn, 0 error".
func (r HealthReport) Summary() string {
	return fmt.Sprintf("%d ok, %d warn, %d error",
		r.Count(HealthOK), r.Count(HealthWarn), r.Count(HealthError))
}
