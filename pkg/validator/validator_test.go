package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingInput struct {
	Date     string `json:"date" validate:"required,isodate"`
	TimeSlot string `json:"time_slot" validate:"required,clock"`
	Day      string `json:"day" validate:"omitempty,weekday"`
	Email    string `json:"patient_email" validate:"omitempty,email"`
}

func TestValidate_CustomTags(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		input bookingInput
		bad   []string
	}{
		{"valid", bookingInput{Date: "2025-06-01", TimeSlot: "09:30", Day: "sunday"}, nil},
		{"day is case insensitive", bookingInput{Date: "2025-06-01", TimeSlot: "17:00", Day: "MONDAY"}, nil},
		{"bad date", bookingInput{Date: "2025-13-01", TimeSlot: "09:30"}, []string{"date"}},
		{"bad clock", bookingInput{Date: "2025-06-01", TimeSlot: "9.30"}, []string{"time_slot"}},
		{"bad weekday", bookingInput{Date: "2025-06-01", TimeSlot: "09:30", Day: "someday"}, []string{"day"}},
		{"missing required", bookingInput{}, []string{"date", "time_slot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if tt.bad == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			fields := v.FormatValidationErrors(err)
			assert.Len(t, fields, len(tt.bad))
			for _, field := range tt.bad {
				assert.Contains(t, fields, field)
			}
		})
	}
}

func TestFormatValidationErrors_Messages(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&bookingInput{Date: "tomorrow", TimeSlot: "24:00", Email: "nope"})
	require.Error(t, err)

	fields := v.FormatValidationErrors(err)
	assert.Equal(t, "date must be a date in YYYY-MM-DD format", fields["date"])
	assert.Equal(t, "time_slot must be a time in HH:MM format", fields["time_slot"])
	assert.Equal(t, "patient_email must be a valid email address", fields["patient_email"])
}
