package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// RedisSlotClaimKeyPrefix namespaces the per-slot claim keys
	RedisSlotClaimKeyPrefix = "slot:claim:"

	// Batch size for startup sync; a new pipeline is built per batch
	syncBatchSize = 500
)

// releaseClaimScript deletes a claim only while it still holds the given
// appointment id, so a late release never drops somebody else's claim.
var releaseClaimScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

// SlotKey identifies one bookable slot
type SlotKey struct {
	DoctorID  uuid.UUID
	ChamberID uuid.UUID
	Date      time.Time
	TimeSlot  string
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s%s:%s:%s:%s", RedisSlotClaimKeyPrefix,
		k.DoctorID, k.ChamberID, k.Date.Format(entity.DateLayout), k.TimeSlot)
}

// SlotKeyOf returns the claim key held by an appointment
func SlotKeyOf(a *entity.Appointment) SlotKey {
	return SlotKey{DoctorID: a.DoctorID, ChamberID: a.ChamberID, Date: a.Date, TimeSlot: a.TimeSlot}
}

// SlotClaimer is a fast-path guard in front of the database unique index.
// The value stored under a claim is the id of the appointment holding it.
type SlotClaimer interface {
	// Claim sets the key only if nobody holds it
	Claim(ctx context.Context, key SlotKey, appointmentID uuid.UUID) (bool, error)
	// Takeover overwrites a claim the database shows to be stale
	Takeover(ctx context.Context, key SlotKey, appointmentID uuid.UUID) error
	// Release drops the claim if it is still held by appointmentID
	Release(ctx context.Context, key SlotKey, appointmentID uuid.UUID) error
}

// RedisSlotClaimService keeps slot claims in Redis and rebuilds them from
// PostgreSQL on startup.
type RedisSlotClaimService struct {
	redisClient     *redis.Client
	appointmentRepo repository.AppointmentRepository
	log             *logrus.Logger
	// location is the timezone appointment dates are calendar days in
	location *time.Location
	now      func() time.Time
}

func NewRedisSlotClaimService(redisClient *redis.Client, appointmentRepo repository.AppointmentRepository, location *time.Location, log *logrus.Logger) *RedisSlotClaimService {
	return &RedisSlotClaimService{
		redisClient:     redisClient,
		appointmentRepo: appointmentRepo,
		log:             log,
		location:        location,
		now:             time.Now,
	}
}

func (s *RedisSlotClaimService) Claim(ctx context.Context, key SlotKey, appointmentID uuid.UUID) (bool, error) {
	ok, err := s.redisClient.SetNX(ctx, key.String(), appointmentID.String(), s.calculateTTL(key.Date)).Result()
	if err != nil {
		return false, fmt.Errorf("claim slot %s: %w", key, err)
	}
	return ok, nil
}

func (s *RedisSlotClaimService) Takeover(ctx context.Context, key SlotKey, appointmentID uuid.UUID) error {
	if err := s.redisClient.Set(ctx, key.String(), appointmentID.String(), s.calculateTTL(key.Date)).Err(); err != nil {
		return fmt.Errorf("take over slot %s: %w", key, err)
	}
	s.log.Debugf("Took over stale claim %s", key)
	return nil
}

func (s *RedisSlotClaimService) Release(ctx context.Context, key SlotKey, appointmentID uuid.UUID) error {
	_, err := releaseClaimScript.Run(ctx, s.redisClient, []string{key.String()}, appointmentID.String()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot %s: %w", key, err)
	}
	return nil
}

// SyncOnStartup rewrites the claim of every non-cancelled appointment from
// today onward. It should run before the server accepts traffic.
func (s *RedisSlotClaimService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting slot claim re-sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	today := s.today()
	offset := 0
	totalSynced := 0

	for {
		appointments, err := s.appointmentRepo.FindActiveFrom(ctx, today, syncBatchSize, offset)
		if err != nil {
			s.log.Errorf("Failed to query appointments at offset %d: %+v", offset, err)
			return fmt.Errorf("query appointments at offset %d: %w", offset, err)
		}

		if len(appointments) == 0 {
			break
		}

		pipe := s.redisClient.TxPipeline()
		for i := range appointments {
			key := SlotKeyOf(&appointments[i])
			pipe.Set(ctx, key.String(), appointments[i].ID.String(), s.calculateTTL(key.Date))
		}

		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(appointments)

		if len(appointments) < syncBatchSize {
			break
		}
		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Slot claim re-sync completed: %d claims synced in %v", totalSynced, time.Since(startTime))
	return nil
}

// calculateTTL keeps a claim until local midnight after the appointment date
func (s *RedisSlotClaimService) calculateTTL(date time.Time) time.Duration {
	y, m, d := date.Date()
	ttl := time.Date(y, m, d+1, 0, 0, 0, 0, s.loc()).Sub(s.now())
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}

// today is the current calendar date in the service timezone
func (s *RedisSlotClaimService) today() time.Time {
	return entity.DateOf(s.now().In(s.loc()))
}

func (s *RedisSlotClaimService) loc() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}
