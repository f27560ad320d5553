package domain

import "context"

// ServiceState is the raw string reported by the service manager
// (active, inactive, failed, activating, ...).
type ServiceState string

const (
	StateActive   ServiceState = "active"
	StateInactive ServiceState = "inactive"
	StateFailed   ServiceState = "failed"
	StateUnknown  ServiceState = "unknown"
)

func (s ServiceState) Running() bool { return s == StateActive }

// ServiceManager is the OS service-control facility.
type ServiceManager interface {
	// IsActive returns the manager's activity state for service.
	// An error means the manager itself could not be run.
	IsActive(ctx context.Context, service string) (string, error)
	// Control runs action against service.
	Control(ctx context.Context, action Action, service string) error
}

// QueryState asks m for the state of service. Any failure maps to StateUnknown;
// the error is returned for logging only and never needs to abort the caller.
func QueryState(ctx context.Context, m ServiceManager, service string) (ServiceState, error) {
	out, err := m.IsActive(ctx, service)
	if err != nil {
		return StateUnknown, err
	}
	return ServiceState(out), nil
}

// ProjectStatus is a project descriptor plus its observed state.
type ProjectStatus struct {
	Project
	Status  ServiceState `json:"status"`
	Running bool         `json:"running"`
}

func NewProjectStatus(p Project, s ServiceState) ProjectStatus {
	return ProjectStatus{
		Project: p,
		Status:  s,
		Running: s.Running(),
	}
}
