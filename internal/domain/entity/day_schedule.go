package entity

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"see-a-doctor/internal/domain/slot"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format of calendar dates
const DateLayout = "2006-01-02"

// TimeSlot is one bookable interval inside a DaySchedule
type TimeSlot struct {
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	ChamberID   *uuid.UUID `json:"chamber_id,omitempty"`
	IsAvailable bool       `json:"is_available"`
}

// TimeSlots is stored as JSONB
type TimeSlots []TimeSlot

// Value returns json value, implement driver.Valuer interface
func (s TimeSlots) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan scan value into TimeSlots, implements sql.Scanner interface
func (s *TimeSlots) Scan(value interface{}) error {
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if bytes == nil {
		*s = nil
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// DaySchedule holds one doctor's slots for one calendar date. Saves replace
// the whole document.
type DaySchedule struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_day_schedules_doctor_date" json:"doctor_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uq_day_schedules_doctor_date" json:"date"`
	TimeSlots TimeSlots `gorm:"type:jsonb;not null;default:'[]'" json:"time_slots"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DaySchedule) TableName() string {
	return "day_schedules"
}

// ParseDate parses YYYY-MM-DD as a UTC calendar date
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// DateOf truncates t to its calendar date in t's own location, returned as UTC midnight
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SlotsFromIntervals turns generated intervals into available slots
func SlotsFromIntervals(intervals []slot.Interval, chamberID *uuid.UUID) TimeSlots {
	slots := make(TimeSlots, len(intervals))
	for i, in := range intervals {
		slots[i] = TimeSlot{
			StartTime:   in.Start,
			EndTime:     in.End,
			ChamberID:   chamberID,
			IsAvailable: true,
		}
	}
	return slots
}

// Find returns the slot starting at label for chamberID. Slots without a
// chamber match any chamber.
func (d *DaySchedule) Find(chamberID uuid.UUID, label string) (TimeSlot, bool) {
	for _, s := range d.TimeSlots {
		if s.StartTime != label {
			continue
		}
		if s.ChamberID == nil || *s.ChamberID == chamberID {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// Offers reports whether the day has a slot with exactly these bounds. A nil
// chamberID, or a slot with no chamber, matches any chamber.
func (d *DaySchedule) Offers(chamberID *uuid.UUID, start, end string) bool {
	for _, s := range d.TimeSlots {
		if s.StartTime != start || s.EndTime != end {
			continue
		}
		if chamberID == nil || s.ChamberID == nil || *s.ChamberID == *chamberID {
			return true
		}
	}
	return false
}
