package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_ChamberMorning(t *testing.T) {
	slots, err := Generate("09:00", "11:00", 30)

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)
}

func TestGenerate_SlotCount(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration int
		want     int
	}{
		{"exact fit", "09:00", "17:00", 30, 16},
		{"partial last slot", "09:00", "10:45", 30, 4},
		{"single slot wider than window", "09:00", "09:10", 30, 1},
		{"odd duration", "08:15", "12:00", 20, 12},
		{"one minute slots", "23:00", "23:59", 1, 59},
		{"unspecified duration", "14:00", "15:00", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := Generate(tt.start, tt.end, tt.duration)
			require.NoError(t, err)
			assert.Len(t, slots, tt.want)
			assert.Equal(t, tt.start, slots[0])

			duration := tt.duration
			if duration == 0 {
				duration = DefaultDuration
			}
			for i := 1; i < len(slots); i++ {
				prev, _ := ParseClock(slots[i-1])
				cur, _ := ParseClock(slots[i])
				assert.Equal(t, duration, cur-prev)
			}
		})
	}
}

func TestGenerate_LastSlotStartsBeforeEnd(t *testing.T) {
	slots, err := Generate("16:00", "17:00", 30)
	require.NoError(t, err)
	assert.Equal(t, "16:30", slots[len(slots)-1])

	// 10:30 still starts before 10:45 even though it ends at 11:00
	intervals, err := ForWindows([]Window{{Start: "09:00", End: "10:45"}}, 30)
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: "10:30", End: "11:00"}, intervals[len(intervals)-1])
}

func TestGenerate_IsPure(t *testing.T) {
	first, err := Generate("10:00", "13:00", 15)
	require.NoError(t, err)
	second, err := Generate("10:00", "13:00", 15)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration int
		wantErr  error
	}{
		{"non numeric hour", "ab:00", "10:00", 30, ErrInvalidClock},
		{"non numeric minute", "09:xx", "10:00", 30, ErrInvalidClock},
		{"missing colon", "0900", "10:00", 30, ErrInvalidClock},
		{"hour out of range", "09:00", "24:00", 30, ErrInvalidClock},
		{"minute out of range", "09:60", "10:00", 30, ErrInvalidClock},
		{"empty", "", "10:00", 30, ErrInvalidClock},
		{"reversed window", "11:00", "09:00", 30, ErrInvalidWindow},
		{"empty window", "09:00", "09:00", 30, ErrInvalidWindow},
		{"negative duration", "09:00", "10:00", -15, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.start, tt.end, tt.duration)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestForWindows_MergesAndSorts(t *testing.T) {
	windows := []Window{
		{Start: "17:00", End: "18:00"},
		{Start: "09:00", End: "10:00"},
		{Start: "09:30", End: "10:30"},
	}

	intervals, err := ForWindows(windows, 30)
	require.NoError(t, err)

	var starts []string
	for _, in := range intervals {
		starts = append(starts, in.Start)
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "17:00", "17:30"}, starts)
}

func TestDefault_IsFallbackMorningAndEvening(t *testing.T) {
	intervals := Default()

	require.Len(t, intervals, 12)
	assert.Equal(t, "09:00", intervals[0].Start)
	assert.Equal(t, "11:30", intervals[5].Start)
	assert.Equal(t, "17:00", intervals[6].Start)
	assert.Equal(t, Interval{Start: "19:30", End: "20:00"}, intervals[11])
}

func TestContains(t *testing.T) {
	intervals, err := ForWindows([]Window{{Start: "09:00", End: "10:00"}}, 30)
	require.NoError(t, err)

	assert.True(t, Contains(intervals, "09:30"))
	assert.False(t, Contains(intervals, "09:15"))
	assert.False(t, Contains(intervals, "10:00"))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "00:30", FormatClock(24*60+30))
}
