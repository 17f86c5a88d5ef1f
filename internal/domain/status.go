package domain

import "strings"

type ServiceStatus int

const (
	StatusOK ServiceStatus = iota + 1
	StatusDegraded
	StatusUnavailable
)

var AllServiceStatuses = []ServiceStatus{StatusOK, StatusDegraded, StatusUnavailable}

// The name used by the status endpoint
func (s ServiceStatus) Name() string {
	switch s {
	case StatusOK:
		return "green"
	case StatusDegraded:
		return "yellow"
	case StatusUnavailable:
		return "red"
	}
	return "unknown"
}

func (s ServiceStatus) Description() string {
	switch s {
	case StatusOK:
		return "No issues"
	case StatusDegraded:
		return "Some issues"
	case StatusUnavailable:
		return "Service unavailable"
	}
	return "Unknown status"
}

func (s ServiceStatus) String() string {
	return s.Name()
}

// Case-insensitive lookup of a status by its name
func ServiceStatusFromName(name string) (ServiceStatus, bool) {
	for _, status := range AllServiceStatuses {
		if strings.EqualFold(status.Name(), name) {
			return status, true
		}
	}
	return 0, false
}
