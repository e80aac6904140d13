package entity

// Module tags carried by related records.
const (
	ModuleLeads    = "Leads"
	ModuleContacts = "Contacts"
)

type Attachment struct {
	ID        string `json:"id"`
	RecordID  string `json:"record_id"`
	Module    string `json:"module"`
	FileName  string `json:"file_name"`
	FileURL   string `json:"file_url,omitempty"`
	Converted bool   `json:"converted"`
}

type Note struct {
	ID        string `json:"id"`
	RecordID  string `json:"record_id"`
	Module    string `json:"module"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content"`
	Converted bool   `json:"converted"`
}

const (
	ReminderStatusPending = "Pending"
	ReminderStatusDone    = "Done"
)

type Reminder struct {
	ID            string `json:"id"`
	RecordID      string `json:"record_id"`
	Module        string `json:"module"`
	Title         string `json:"title"`
	Due           string `json:"due"`
	Status        string `json:"status"`
	AssigneeEmail string `json:"assignee_email,omitempty"`
	Converted     bool   `json:"converted"`
	Notified      bool   `json:"notified"`
}
