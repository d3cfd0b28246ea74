package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDaySchedule_Offers(t *testing.T) {
	chamberA := uuid.New()
	chamberB := uuid.New()
	day := &DaySchedule{TimeSlots: TimeSlots{
		{StartTime: "09:00", EndTime: "09:30", ChamberID: &chamberA, IsAvailable: true},
		{StartTime: "17:00", EndTime: "17:20", ChamberID: &chamberB, IsAvailable: true},
	}}

	tests := []struct {
		name    string
		chamber *uuid.UUID
		start   string
		end     string
		want    bool
	}{
		{"own chamber slot", &chamberA, "09:00", "09:30", true},
		{"any chamber", nil, "17:00", "17:20", true},
		{"slot of another chamber", &chamberB, "09:00", "09:30", false},
		{"different end", &chamberA, "09:00", "10:00", false},
		{"not generated", nil, "12:00", "12:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, day.Offers(tt.chamber, tt.start, tt.end))
		})
	}
}

func TestDaySchedule_FindMissingSlot(t *testing.T) {
	chamberID := uuid.New()
	day := &DaySchedule{TimeSlots: TimeSlots{{StartTime: "09:00", EndTime: "09:30", ChamberID: &chamberID, IsAvailable: true}}}

	_, ok := day.Find(chamberID, "09:30")
	assert.False(t, ok)
}
