package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusNoShow,
}

func TestAppointmentStatus_Transitions(t *testing.T) {
	allowed := map[AppointmentStatus]map[AppointmentStatus]bool{
		AppointmentStatusPending: {
			AppointmentStatusConfirmed: true,
			AppointmentStatusCancelled: true,
		},
		AppointmentStatusConfirmed: {
			AppointmentStatusCompleted: true,
			AppointmentStatusCancelled: true,
		},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			got := from.CanTransitionTo(to)
			assert.Equal(t, allowed[from][to], got, "%s -> %s", from, to)
		}
	}
}

func TestAppointmentStatus_CompletedCannotBeCancelled(t *testing.T) {
	assert.False(t, AppointmentStatusCompleted.CanTransitionTo(AppointmentStatusCancelled))
	assert.False(t, AppointmentStatusCompleted.CanTransitionTo(AppointmentStatusPending))
}

func TestAppointmentStatus_Terminal(t *testing.T) {
	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.True(t, AppointmentStatusNoShow.IsTerminal())
}

func TestParseAppointmentStatus(t *testing.T) {
	s, ok := ParseAppointmentStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, AppointmentStatusConfirmed, s)

	_, ok = ParseAppointmentStatus("Confirmed")
	assert.False(t, ok)
	_, ok = ParseAppointmentStatus("archived")
	assert.False(t, ok)
}

func TestAppointment_IsActive(t *testing.T) {
	for _, s := range allStatuses {
		a := Appointment{Status: s}
		assert.Equal(t, s != AppointmentStatusCancelled, a.IsActive(), string(s))
	}
}
