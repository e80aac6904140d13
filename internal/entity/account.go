package entity

// Account is created from a Lead's company during conversion.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Rating   string `json:"rating,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
	Industry Lookup `json:"industry"`
	Source   Lookup `json:"source"`
	Owner    string `json:"owner,omitempty"`
}

// NewAccountFromLead copies the company-level fields of a lead.
func NewAccountFromLead(l *Lead) *Account {
	return &Account{
		Name:     l.Company,
		Rating:   l.Rating,
		Phone:    l.Phone,
		Website:  l.Website,
		Industry: l.Industry,
		Source:   l.Source,
		Owner:    l.Owner,
	}
}
