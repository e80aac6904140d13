package entity

import "strings"

type Contact struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	AccountID      string  `json:"account_id,omitempty"`
	Industry       Lookup  `json:"industry"`
	Source         Lookup  `json:"source"`
	Profile        Lookup  `json:"profile"`
	Owner          string  `json:"owner,omitempty"`
	BillingAddress Address `json:"billing_address"`
}

func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// NewContactFromLead copies the person-level fields of a lead. accountID may
// be empty when the lead had no company.
func NewContactFromLead(l *Lead, accountID string) *Contact {
	return &Contact{
		FirstName:      l.FirstName,
		LastName:       l.LastName,
		Email:          l.Email,
		Phone:          l.Phone,
		AccountID:      accountID,
		Industry:       l.Industry,
		Source:         l.Source,
		Profile:        l.Profile,
		Owner:          l.Owner,
		BillingAddress: l.BillingAddress,
	}
}
