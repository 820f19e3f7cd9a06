package metadata

import "fmt"

// RequestStatus is the lifecycle state of a purchase request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusCompleted RequestStatus = "completed"
	StatusCancelled RequestStatus = "cancelled"
)

func NewRequestStatus(value string) (RequestStatus, error) {
	status := RequestStatus(value)
	if !status.isValid() {
		return "", fmt.Errorf("invalid purchase request status: %s", value)
	}
	return status, nil
}

func (s RequestStatus) isValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// WithdrawalStatus is the per-category outcome of a mass withdrawal.
type WithdrawalStatus string

const (
	WithdrawalSuccess  WithdrawalStatus = "success"
	WithdrawalPartial  WithdrawalStatus = "partial"
	WithdrawalNotFound WithdrawalStatus = "not_found"
)
