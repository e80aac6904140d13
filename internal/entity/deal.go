package entity

const DealStageQualification = "Qualification"

// Deal is the opportunity opened for a converted lead.
type Deal struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ContactID  string `json:"contact_id"`
	AccountID  string `json:"account_id,omitempty"`
	JobTitle   string `json:"job_title,omitempty"`
	Experience string `json:"experience,omitempty"`
	Stack      Lookup `json:"stack"`
	Profile    Lookup `json:"profile"`
	Stage      string `json:"stage"`
	Converted  bool   `json:"converted"`
	Owner      string `json:"owner,omitempty"`
}

func NewDealFromLead(l *Lead, contactID, accountID string) *Deal {
	name := l.Company
	if name == "" {
		name = l.FullName()
	}
	if l.JobTitle != "" {
		name += " - " + l.JobTitle
	}
	return &Deal{
		Name:       name,
		ContactID:  contactID,
		AccountID:  accountID,
		JobTitle:   l.JobTitle,
		Experience: l.Experience,
		Stack:      l.Stack,
		Profile:    l.Profile,
		Stage:      DealStageQualification,
		Converted:  true,
		Owner:      l.Owner,
	}
}
