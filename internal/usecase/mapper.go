package usecase

import (
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
)

// Forms receive new records, reports are queried, updated and deleted.
const (
	FormLeads       = "Leads"
	FormAccounts    = "Accounts"
	FormContacts    = "Contacts"
	FormDeals       = "Deals"
	FormAttachments = "Attachments"
	FormNotes       = "Notes"
	FormReminders   = "Reminders"
	FormRemarks     = "Remarks"

	ReportLeads       = "All_Leads"
	ReportAccounts    = "All_Accounts"
	ReportContacts    = "All_Contacts"
	ReportDeals       = "All_Deals"
	ReportAttachments = "All_Attachments"
	ReportNotes       = "All_Notes"
	ReportReminders   = "All_Reminders"
	ReportMeetings    = "All_Meetings"
	ReportRemarks     = "All_Remarks"

	APICreateMeeting = "Create_Meeting"
	APIUpdateMeeting = "Update_Meeting"
)

// Field names shared by related records (attachments, notes, reminders,
// meetings).
const (
	FieldRecordID  = "Record_Id"
	FieldModule    = "Module"
	FieldConverted = "Converted"
	FieldAccount   = "Account_Name"
	FieldDeal      = "Deal_Name"

	FieldReminderSent = "Reminder_Sent"
)

func nameFields(first, last string) map[string]any {
	return map[string]any{"first_name": first, "last_name": last}
}

func addressFields(a entity.Address) map[string]any {
	if a.IsZero() {
		return nil
	}
	return map[string]any{
		"address_line_1": a.Line1,
		"address_line_2": a.Line2,
		"district_city":  a.City,
		"state_province": a.State,
		"postal_code":    a.PostalCode,
		"country":        a.Country,
	}
}

func lookupOf(r creator.Record, key string) entity.Lookup {
	id, display := r.Lookup(key)
	return entity.Lookup{ID: id, DisplayValue: display}
}

func addressOf(r creator.Record, key string) entity.Address {
	return entity.Address{
		Line1:      r.Sub(key, "address_line_1"),
		Line2:      r.Sub(key, "address_line_2"),
		City:       r.Sub(key, "district_city"),
		State:      r.Sub(key, "state_province"),
		PostalCode: r.Sub(key, "postal_code"),
		Country:    r.Sub(key, "country"),
	}
}

func addedTimeOf(r creator.Record, loc *time.Location) time.Time {
	t, err := entity.ParseTimestamp(r.String("Added_Time"), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func leadFromRecord(r creator.Record, loc *time.Location) *entity.Lead {
	first, last := r.Sub("Name", "first_name"), r.Sub("Name", "last_name")
	if first == "" && last == "" {
		first = r.String("Name")
	}
	status, ok := entity.ParseLeadStatus(r.String("Lead_Status"))
	if !ok {
		status = entity.LeadStatus(r.String("Lead_Status"))
	}
	return &entity.Lead{
		ID:             r.ID(),
		FirstName:      first,
		LastName:       last,
		Email:          r.String("Email"),
		Phone:          r.String("Phone_Number"),
		Company:        r.String("Company"),
		Website:        r.String("Website"),
		JobTitle:       r.String("Job_Title"),
		Experience:     r.String("Experience"),
		Status:         status,
		Rating:         r.String("Rating"),
		RemarksDone:    r.Bool("Remarks_Done"),
		Source:         lookupOf(r, "Lead_Source"),
		Industry:       lookupOf(r, "Industry"),
		Profile:        lookupOf(r, "Profile"),
		Stack:          lookupOf(r, "Stack"),
		Owner:          r.String("Lead_Owner"),
		BillingAddress: addressOf(r, "Billing_Address"),
		AddedTime:      addedTimeOf(r, loc),
	}
}

// accountFields builds the Account form payload.
func accountFields(a *entity.Account) creator.Fields {
	return creator.Fields{
		"Account_Name":  a.Name,
		"Rating":        a.Rating,
		"Phone_Number":  a.Phone,
		"Website":       a.Website,
		"Industry":      a.Industry.IDOrNil(),
		"Lead_Source":   a.Source.IDOrNil(),
		"Account_Owner": a.Owner,
	}
}

// contactFields always carries Account_Name, as null when no account exists.
func contactFields(c *entity.Contact) creator.Fields {
	f := creator.Fields{
		"Name":          nameFields(c.FirstName, c.LastName),
		"Email":         c.Email,
		"Phone_Number":  c.Phone,
		FieldAccount:    idOrNil(c.AccountID),
		"Industry":      c.Industry.IDOrNil(),
		"Lead_Source":   c.Source.IDOrNil(),
		"Profile":       c.Profile.IDOrNil(),
		"Contact_Owner": c.Owner,
	}
	if addr := addressFields(c.BillingAddress); addr != nil {
		f["Billing_Address"] = addr
	}
	return f
}

func dealFields(d *entity.Deal) creator.Fields {
	return creator.Fields{
		FieldDeal:      d.Name,
		"Contact_Name": d.ContactID,
		FieldAccount:   idOrNil(d.AccountID),
		"Job_Title":    d.JobTitle,
		"Experience":   d.Experience,
		"Stack":        d.Stack.IDOrNil(),
		"Profile":      d.Profile.IDOrNil(),
		"Stage":        d.Stage,
		FieldConverted: d.Converted,
		"Deal_Owner":   d.Owner,
	}
}

func idOrNil(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func meetingFromRecord(r creator.Record) entity.Meeting {
	return entity.Meeting{
		ID:              r.ID(),
		Title:           r.String("Title"),
		Description:     r.String("Description"),
		RecordID:        r.String(FieldRecordID),
		Module:          r.String(FieldModule),
		Start:           r.String("Schedule_Start"),
		End:             r.String("Schedule_End"),
		Status:          r.String("Status"),
		Participants:    entity.ParseParticipants(r.String("Participants")),
		CalendarEventID: r.String("Calendar_Event_Id"),
	}
}

func remarkFromRecord(r creator.Record, loc *time.Location) entity.Remark {
	meetingID, _ := r.Lookup("Meeting")
	return entity.Remark{
		ID:        r.ID(),
		MeetingID: meetingID,
		RecordID:  r.String(FieldRecordID),
		Text:      r.String("Remark"),
		Author:    r.String("Added_User"),
		AddedTime: addedTimeOf(r, loc),
	}
}

func attachmentFromRecord(r creator.Record) entity.Attachment {
	return entity.Attachment{
		ID:        r.ID(),
		RecordID:  r.String(FieldRecordID),
		Module:    r.String(FieldModule),
		FileName:  r.String("File_Name"),
		FileURL:   r.String("File"),
		Converted: r.Bool(FieldConverted),
	}
}

func noteFromRecord(r creator.Record) entity.Note {
	return entity.Note{
		ID:        r.ID(),
		RecordID:  r.String(FieldRecordID),
		Module:    r.String(FieldModule),
		Title:     r.String("Title"),
		Content:   r.String("Content"),
		Converted: r.Bool(FieldConverted),
	}
}

func reminderFromRecord(r creator.Record) entity.Reminder {
	return entity.Reminder{
		ID:            r.ID(),
		RecordID:      r.String(FieldRecordID),
		Module:        r.String(FieldModule),
		Title:         r.String("Title"),
		Due:           r.String("Due_Date"),
		Status:        r.String("Status"),
		AssigneeEmail: r.String("Assignee_Email"),
		Converted:     r.Bool(FieldConverted),
		Notified:      r.Bool(FieldReminderSent),
	}
}
