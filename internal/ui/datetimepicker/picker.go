// Package datetimepicker edits a single instant as a calendar day plus a
// 12-hour clock.
package datetimepicker

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Picker keeps one pending time.Time. Day selection touches only the date
// and clock selection touches only the time of day. The browsed month is
// separate view state.
type Picker struct {
	committed time.Time
	pending   time.Time

	viewYear  int
	viewMonth time.Month
}

// New starts a picker committed at t, truncated to the minute.
func New(t time.Time) *Picker {
	t = t.Truncate(time.Minute)
	return &Picker{
		committed: t,
		pending:   t,
		viewYear:  t.Year(),
		viewMonth: t.Month(),
	}
}

func (p *Picker) Value() time.Time     { return p.pending }
func (p *Picker) Committed() time.Time { return p.committed }

// Date is the pending calendar day as YYYY-MM-DD.
func (p *Picker) Date() string { return p.pending.Format(DateLayout) }

// Clock is the pending time of day as HH:mm.
func (p *Picker) Clock() string { return p.pending.Format(ClockLayout) }

func (p *Picker) Dirty() bool { return !p.pending.Equal(p.committed) }

// ViewMonth returns the month being browsed.
func (p *Picker) ViewMonth() (int, time.Month) { return p.viewYear, p.viewMonth }

func (p *Picker) NextMonth() { p.shiftView(1) }
func (p *Picker) PrevMonth() { p.shiftView(-1) }
func (p *Picker) NextYear()  { p.shiftView(12) }
func (p *Picker) PrevYear()  { p.shiftView(-12) }

func (p *Picker) shiftView(months int) {
	first := time.Date(p.viewYear, p.viewMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	p.viewYear, p.viewMonth = first.Year(), first.Month()
}

// DaysInView is the number of days of the browsed month.
func (p *Picker) DaysInView() int {
	return time.Date(p.viewYear, p.viewMonth+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SelectDay picks a day of the browsed month, keeping the time of day.
func (p *Picker) SelectDay(day int) error {
	if day < 1 || day > p.DaysInView() {
		return fmt.Errorf("day %d is outside %s %d", day, p.viewMonth, p.viewYear)
	}
	v := p.pending
	p.pending = time.Date(p.viewYear, p.viewMonth, day, v.Hour(), v.Minute(), 0, 0, v.Location())
	return nil
}

// SetHour sets the hour on the 12-hour dial (1..12), keeping AM/PM.
func (p *Picker) SetHour(hour12 int) error {
	if hour12 < 1 || hour12 > 12 {
		return fmt.Errorf("hour %d is outside 1..12", hour12)
	}
	h := hour12 % 12
	if p.IsPM() {
		h += 12
	}
	p.setClock(h, p.pending.Minute())
	return nil
}

func (p *Picker) SetMinute(minute int) error {
	if minute < 0 || minute > 59 {
		return fmt.Errorf("minute %d is outside 0..59", minute)
	}
	p.setClock(p.pending.Hour(), minute)
	return nil
}

// SetMeridiem moves the pending time to the morning or afternoon half of
// the same day.
func (p *Picker) SetMeridiem(pm bool) {
	h := p.pending.Hour() % 12
	if pm {
		h += 12
	}
	p.setClock(h, p.pending.Minute())
}

func (p *Picker) IsPM() bool { return p.pending.Hour() >= 12 }

// Hour12 is the pending hour on the 12-hour dial.
func (p *Picker) Hour12() int {
	if h := p.pending.Hour() % 12; h != 0 {
		return h
	}
	return 12
}

func (p *Picker) setClock(hour, minute int) {
	v := p.pending
	p.pending = time.Date(v.Year(), v.Month(), v.Day(), hour, minute, 0, 0, v.Location())
}

// Save commits the pending value and returns it.
func (p *Picker) Save() time.Time {
	p.committed = p.pending
	return p.committed
}

// Cancel discards pending edits and returns to the committed value and its
// month.
func (p *Picker) Cancel() {
	p.pending = p.committed
	p.viewYear, p.viewMonth = p.committed.Year(), p.committed.Month()
}
