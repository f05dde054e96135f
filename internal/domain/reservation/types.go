package reservation

import "errors"

var ErrInvalidStatus = errors.New("invalid reservation status")

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusInUse     Status = "in-use"
	StatusReturned  Status = "returned"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReserved, StatusInUse, StatusReturned, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// IsTerminal reports whether no further checkout/check-in transitions are
// expected from this status.
func (s Status) IsTerminal() bool {
	return s == StatusReturned || s == StatusCancelled
}

// Eligibility is the rental-requirements checklist attached to a
// reservation at creation time. All-false when never recorded.
type Eligibility struct {
	AgeVerified       bool
	LicenseVerified   bool
	InsuranceVerified bool
	WaiverSigned      bool
}
