// Package types provides request and response types shared by the careers API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ApplicationStatus is the workflow state of a candidate application.
type ApplicationStatus string

// The four application states. Applied is the initial state.
const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusShortlisted ApplicationStatus = "Shortlisted"
	StatusAccepted    ApplicationStatus = "Accepted"
	StatusRejected    ApplicationStatus = "Rejected"
)

// legacyStatusPending is the older spelling of the initial state still present in stored rows.
const legacyStatusPending = "Pending"

// AllStatuses lists every status in workflow order.
func AllStatuses() []ApplicationStatus {
	return []ApplicationStatus{StatusApplied, StatusShortlisted, StatusAccepted, StatusRejected}
}

// ParseApplicationStatus parses a status name case-insensitively.
// Both "Applied" and "Pending" parse to StatusApplied.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "applied", "pending":
		return StatusApplied, true
	case "shortlisted":
		return StatusShortlisted, true
	case "accepted":
		return StatusAccepted, true
	case "rejected":
		return StatusRejected, true
	default:
		return "", false
	}
}

// NormalizeStoredStatus maps a status column value to its canonical form.
// NULL, empty, legacy and unrecognized values all read as StatusApplied.
func NormalizeStoredStatus(stored *string) ApplicationStatus {
	if stored == nil {
		return StatusApplied
	}
	if status, ok := ParseApplicationStatus(*stored); ok {
		return status
	}
	return StatusApplied
}

// Notifies reports whether moving an application into this status sends the candidate an email.
func (s ApplicationStatus) Notifies() bool {
	switch s {
	case StatusShortlisted, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// StoredSpellings returns every column value that represents this status.
func (s ApplicationStatus) StoredSpellings() []string {
	if s == StatusApplied {
		return []string{string(StatusApplied), legacyStatusPending}
	}
	return []string{string(s)}
}

// String returns the canonical status name.
func (s ApplicationStatus) String() string {
	return string(s)
}
