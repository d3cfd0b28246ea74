package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"see-a-doctor/internal/delivery/dto"
	"see-a-doctor/internal/delivery/http/middleware"
	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/internal/repository"
	"see-a-doctor/internal/service"
	"see-a-doctor/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

const (
	seedPassword    = "password123"
	seedConcurrency = 4
)

var specializations = []string{
	"Cardiology", "Dermatology", "Pediatrics", "Neurology",
	"Orthopedics", "General Practice", "Psychiatry", "Ophthalmology",
}

// SeedOptions controls how much demo data Seed inserts
type SeedOptions struct {
	Hospitals int
	Doctors   int
}

// Seed fills an empty database with fake hospitals, doctors and chambers.
// Inserts go through the usecases so audit entries and validation apply.
func (app *App) Seed(ctx context.Context, opts SeedOptions) error {
	log := app.Log
	settings := Settings(app.Config)

	userRepo := repository.NewUserRepository(app.DB)
	hospitalRepo := repository.NewHospitalRepository(app.DB)
	doctorProfileRepo := repository.NewDoctorProfileRepository(app.DB)
	chamberRepo := repository.NewChamberRepository(app.DB)
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository(app.DB))

	hospitalUsecase := usecase.NewHospitalUsecase(log, hospitalRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(log, userRepo, doctorProfileRepo, auditService)
	chamberUsecase := usecase.NewChamberUsecase(log, chamberRepo, doctorProfileRepo, auditService, settings)

	hospitalIDs := make([]uuid.UUID, 0, opts.Hospitals)
	for i := 0; i < opts.Hospitals; i++ {
		hospital, err := hospitalUsecase.CreateHospital(ctx, &dto.CreateHospitalRequest{
			Name:    gofakeit.Company() + " Hospital",
			Address: gofakeit.Street(),
			City:    gofakeit.City(),
			Phone:   gofakeit.Phone(),
			Email:   gofakeit.Email(),
		})
		if err != nil {
			return fmt.Errorf("seed hospital %d: %w", i, err)
		}
		hospitalIDs = append(hospitalIDs, hospital.ID)
	}
	log.Infof("Seeded %d hospitals", len(hospitalIDs))

	var created, skipped atomic.Int64
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(seedConcurrency)
	for i := 0; i < opts.Doctors; i++ {
		p.Go(func(ctx context.Context) error {
			doctor, err := doctorUsecase.CreateDoctor(ctx, fakeDoctor(i, hospitalIDs))
			if err != nil {
				if errors.Is(err, usecase.ErrDoctorEmailExists) || errors.Is(err, usecase.ErrDoctorLicenseExists) {
					skipped.Add(1)
					return nil
				}
				return fmt.Errorf("seed doctor %d: %w", i, err)
			}

			// Chambers are created as the doctor so ownership checks pass
			doctorCtx := middleware.WithPrincipal(ctx, entity.Principal{UserID: doctor.ID, Role: entity.RoleDoctor})
			if _, err := chamberUsecase.CreateChamber(doctorCtx, doctor.ID, fakeChamber()); err != nil {
				return fmt.Errorf("seed chamber for doctor %s: %w", doctor.ID, err)
			}

			created.Add(1)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return err
	}

	log.Infof("Seeded %d doctors (%d skipped as duplicates)", created.Load(), skipped.Load())
	return nil
}

func fakeDoctor(i int, hospitalIDs []uuid.UUID) *dto.CreateDoctorRequest {
	years := gofakeit.Number(1, 35)
	req := &dto.CreateDoctorRequest{
		Email:           fmt.Sprintf("doctor%03d.%s", i, gofakeit.Email()),
		Password:        seedPassword,
		FullName:        "Dr. " + gofakeit.Name(),
		Phone:           gofakeit.Phone(),
		LicenseNumber:   fmt.Sprintf("LIC-%06d", gofakeit.Number(0, 999999)),
		Specialization:  gofakeit.RandomString(specializations),
		Qualification:   "MBBS",
		Biography:       fmt.Sprintf("%d years of practice, previously at %s.", years, gofakeit.Company()),
		ExperienceYears: years,
	}
	if len(hospitalIDs) > 0 {
		id := hospitalIDs[gofakeit.Number(0, len(hospitalIDs)-1)]
		req.HospitalID = &id
	}
	return req
}

func fakeChamber() *dto.ChamberRequest {
	morning := []string{"Monday", "Wednesday", "Friday"}
	evening := []string{"Tuesday", "Thursday", "Saturday"}

	schedule := make([]dto.ScheduleEntryRequest, 0, len(morning)+len(evening))
	for _, day := range morning {
		schedule = append(schedule, dto.ScheduleEntryRequest{Day: day, StartTime: "09:00", EndTime: "12:00"})
	}
	for _, day := range evening {
		schedule = append(schedule, dto.ScheduleEntryRequest{Day: day, StartTime: "17:00", EndTime: "20:00"})
	}

	return &dto.ChamberRequest{
		Name:            gofakeit.Company() + " Clinic",
		Address:         gofakeit.Street() + ", " + gofakeit.City(),
		Contact:         gofakeit.Phone(),
		Schedule:        schedule,
		SlotDuration:    []int{15, 20, 30}[gofakeit.Number(0, 2)],
		ConsultationFee: decimal.NewFromInt(int64(gofakeit.Number(5, 40) * 100)),
	}
}
