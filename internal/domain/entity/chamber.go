package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"see-a-doctor/internal/domain/slot"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidWeekday      = errors.New("invalid weekday")
	ErrInvalidSlotDuration = errors.New("slot duration must be greater than zero")
)

// Chamber is a doctor's practice location with its own weekly hours
type Chamber struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Address         string          `gorm:"type:text;not null" json:"address"`
	Contact         string          `gorm:"type:varchar(50)" json:"contact,omitempty"`
	Schedule        WeeklySchedule  `gorm:"type:jsonb;not null;default:'[]'" json:"schedule"`
	SlotDuration    int             `gorm:"not null;default:30" json:"slot_duration"`
	ConsultationFee decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"consultation_fee"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Chamber) TableName() string {
	return "chambers"
}

// ScheduleEntry is one working window on a weekday
type ScheduleEntry struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// WeeklySchedule is stored as JSONB
type WeeklySchedule []ScheduleEntry

// Value returns json value, implement driver.Valuer interface
func (s WeeklySchedule) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan scan value into WeeklySchedule, implements sql.Scanner interface
func (s *WeeklySchedule) Scan(value interface{}) error {
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

// ParseWeekday accepts weekday names case-insensitively
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}

// Validate checks every entry and normalises day names.
func (c *Chamber) Validate() error {
	if c.SlotDuration == 0 {
		c.SlotDuration = slot.DefaultDuration
	}
	if c.SlotDuration < 0 {
		return ErrInvalidSlotDuration
	}

	for i, entry := range c.Schedule {
		day, err := ParseWeekday(entry.Day)
		if err != nil {
			return err
		}
		c.Schedule[i].Day = day.String()

		start, err := slot.ParseClock(entry.StartTime)
		if err != nil {
			return err
		}
		end, err := slot.ParseClock(entry.EndTime)
		if err != nil {
			return err
		}
		if start >= end {
			return fmt.Errorf("%s %s-%s: %w", day, entry.StartTime, entry.EndTime, slot.ErrInvalidWindow)
		}
	}
	return nil
}

// WindowsFor returns the working windows configured for weekday
func (c *Chamber) WindowsFor(weekday time.Weekday) []slot.Window {
	var windows []slot.Window
	for _, entry := range c.Schedule {
		if strings.EqualFold(entry.Day, weekday.String()) {
			windows = append(windows, slot.Window{Start: entry.StartTime, End: entry.EndTime})
		}
	}
	return windows
}

// SlotsOn generates the chamber's slots for date. An empty result means the
// chamber is closed that day.
func (c *Chamber) SlotsOn(date time.Time) ([]slot.Interval, error) {
	windows := c.WindowsFor(date.Weekday())
	if len(windows) == 0 {
		return nil, nil
	}
	return slot.ForWindows(windows, c.SlotDuration)
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
}
