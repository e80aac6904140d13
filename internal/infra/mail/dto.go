package mail

type ConversionEmailData struct {
	LeadName  string
	Company   string
	Outcome   string
	ContactID string
	AccountID string
	DealID    string
	Partial   bool
}

type ReminderEmailData struct {
	Title    string
	Due      string
	Module   string
	RecordID string
}
