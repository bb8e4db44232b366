package request

import "errors"

var ErrInvalidStatus = errors.New("invalid request status")

type Status string

const (
	StatusSubmitted        Status = "submitted"
	StatusManagerReview    Status = "manager_review"
	StatusQuoted           Status = "quoted"
	StatusCustomerAccepted Status = "customer_accepted"
	StatusCustomerDeclined Status = "customer_declined"
	StatusInTransit        Status = "in_transit"
	StatusCompleted        Status = "completed"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusSubmitted, StatusManagerReview, StatusQuoted,
		StatusCustomerAccepted, StatusCustomerDeclined,
		StatusInTransit, StatusCompleted:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition can leave this status.
// Declined requests are terminal; a customer who changes their mind files a
// new request.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCustomerDeclined
}

// IsNegotiable reports whether the negotiation ledger accepts new offers for
// a request in this status.
func (s Status) IsNegotiable() bool {
	return s == StatusManagerReview || s == StatusQuoted
}
