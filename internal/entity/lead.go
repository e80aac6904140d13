package entity

import (
	"fmt"
	"strings"
	"time"
)

type LeadStatus string

const (
	LeadStatusNew              LeadStatus = "New"
	LeadStatusContacted        LeadStatus = "Contacted"
	LeadStatusInDiscussion     LeadStatus = "In Discussion"
	LeadStatusMeetingScheduled LeadStatus = "Meeting Scheduled"
	LeadStatusFollowUpRequired LeadStatus = "Follow-Up Required"
	LeadStatusQualified        LeadStatus = "Qualified"
	LeadStatusUnqualified      LeadStatus = "Unqualified"
	LeadStatusConverted        LeadStatus = "Converted"
)

// LeadStatuses lists every status in pipeline order.
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusInDiscussion,
	LeadStatusMeetingScheduled,
	LeadStatusFollowUpRequired,
	LeadStatusQualified,
	LeadStatusUnqualified,
	LeadStatusConverted,
}

// ParseLeadStatus matches s against the known statuses ignoring case and
// surrounding whitespace.
func ParseLeadStatus(s string) (LeadStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range LeadStatuses {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

// Lookup is a reference to another platform record (Industry, Profile, Stack,
// Lead Source...). Only the ID is sent back on writes.
type Lookup struct {
	ID           string `json:"id,omitempty"`
	DisplayValue string `json:"display_value,omitempty"`
}

func (l Lookup) IsZero() bool { return l.ID == "" }

// IDOrNil returns the lookup ID, or nil when unset so the platform receives
// an explicit null.
func (l Lookup) IDOrNil() any {
	if l.ID == "" {
		return nil
	}
	return l.ID
}

type Address struct {
	Line1      string `json:"address_line_1,omitempty"`
	Line2      string `json:"address_line_2,omitempty"`
	City       string `json:"district_city,omitempty"`
	State      string `json:"state_province,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

func (a Address) IsZero() bool { return a == Address{} }

type Lead struct {
	ID             string     `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	Company        string     `json:"company,omitempty"`
	Website        string     `json:"website,omitempty"`
	JobTitle       string     `json:"job_title,omitempty"`
	Experience     string     `json:"experience,omitempty"`
	Status         LeadStatus `json:"status"`
	Rating         string     `json:"rating,omitempty"`
	RemarksDone    bool       `json:"remarks_done"`
	Source         Lookup     `json:"source"`
	Industry       Lookup     `json:"industry"`
	Profile        Lookup     `json:"profile"`
	Stack          Lookup     `json:"stack"`
	Owner          string     `json:"owner,omitempty"`
	BillingAddress Address    `json:"billing_address"`
	AddedTime      time.Time  `json:"added_time,omitempty"`
}

func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// HasCompany reports whether an Account should be created on conversion.
func (l *Lead) HasCompany() bool {
	return strings.TrimSpace(l.Company) != ""
}

// ConversionViolations lists every reason the lead cannot be converted yet.
// An empty result means the lead is ready.
func (l *Lead) ConversionViolations() []string {
	var violations []string
	if !strings.EqualFold(strings.TrimSpace(string(l.Status)), string(LeadStatusQualified)) {
		current := string(l.Status)
		if current == "" {
			current = "none"
		}
		violations = append(violations, fmt.Sprintf("Lead status must be Qualified (current: %s)", current))
	}
	if !l.RemarksDone {
		violations = append(violations, "Remarks must be recorded before the lead can be converted")
	}
	return violations
}
