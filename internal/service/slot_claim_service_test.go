package service

import (
	"testing"
	"time"

	"see-a-doctor/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSlotKey_String(t *testing.T) {
	doctorID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	chamberID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	key := SlotKey{
		DoctorID:  doctorID,
		ChamberID: chamberID,
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:  "09:00",
	}

	assert.Equal(t,
		"slot:claim:11111111-1111-1111-1111-111111111111:22222222-2222-2222-2222-222222222222:2025-06-01:09:00",
		key.String())
}

func TestSlotKeyOf_MatchesAppointment(t *testing.T) {
	a := &entity.Appointment{
		DoctorID:  uuid.New(),
		ChamberID: uuid.New(),
		Date:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:  "10:30",
	}

	key := SlotKeyOf(a)

	assert.Equal(t, a.DoctorID, key.DoctorID)
	assert.Equal(t, a.ChamberID, key.ChamberID)
	assert.Equal(t, "10:30", key.TimeSlot)
}

func TestCalculateTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &RedisSlotClaimService{log: logrus.New(), now: func() time.Time { return now }}

	t.Run("expires a day after the appointment date", func(t *testing.T) {
		ttl := svc.calculateTTL(time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 60*time.Hour, ttl)
	})

	t.Run("same day keeps the rest of the next day", func(t *testing.T) {
		ttl := svc.calculateTTL(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 12*time.Hour, ttl)
	})

	t.Run("past date gets a short ttl", func(t *testing.T) {
		ttl := svc.calculateTTL(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, time.Minute, ttl)
	})
}

func TestCalculateTTL_UsesConfiguredTimezone(t *testing.T) {
	dhaka := time.FixedZone("UTC+6", 6*3600)
	newYork := time.FixedZone("UTC-5", -5*3600)

	t.Run("negative offset keeps the claim through the local evening", func(t *testing.T) {
		// 22:00 local on 1 June is already 2 June in UTC
		now := time.Date(2025, 6, 1, 22, 0, 0, 0, newYork)
		svc := &RedisSlotClaimService{log: logrus.New(), location: newYork, now: func() time.Time { return now }}

		ttl := svc.calculateTTL(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 2*time.Hour, ttl)
	})

	t.Run("positive offset expires at local midnight", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, dhaka)
		svc := &RedisSlotClaimService{log: logrus.New(), location: dhaka, now: func() time.Time { return now }}

		ttl := svc.calculateTTL(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 12*time.Hour, ttl)
	})
}

func TestToday_IsLocalCalendarDate(t *testing.T) {
	newYork := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, 6, 2, 2, 0, 0, 0, time.UTC)
	svc := &RedisSlotClaimService{log: logrus.New(), location: newYork, now: func() time.Time { return now }}

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), svc.today())
}
