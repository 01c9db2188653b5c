package enums

import "fmt"

// LeadStatus tracks the outreach state of an uploaded lead.
type LeadStatus string

const (
	LeadStatusPending       LeadStatus = "pending"
	LeadStatusCalled        LeadStatus = "called"
	LeadStatusContacted     LeadStatus = "contacted"
	LeadStatusBooked        LeadStatus = "booked"
	LeadStatusNotInterested LeadStatus = "not_interested"
)

var validLeadStatuses = []LeadStatus{
	LeadStatusPending,
	LeadStatusCalled,
	LeadStatusContacted,
	LeadStatusBooked,
	LeadStatusNotInterested,
}

// String implements fmt.Stringer.
func (l LeadStatus) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LeadStatus.
func (l LeadStatus) IsValid() bool {
	for _, candidate := range validLeadStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLeadStatus converts raw input into a LeadStatus.
func ParseLeadStatus(value string) (LeadStatus, error) {
	for _, candidate := range validLeadStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lead status %q", value)
}
