package http

import (
	"net/http"

	"see-a-doctor/internal/delivery/http/handler"
	"see-a-doctor/internal/delivery/http/middleware"
	"see-a-doctor/internal/domain/entity"
	"see-a-doctor/internal/infrastructure/metrics"
	"see-a-doctor/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth        *handler.AuthHandler
	Hospital    *handler.HospitalHandler
	Doctor      *handler.DoctorHandler
	Chamber     *handler.ChamberHandler
	Schedule    *handler.ScheduleHandler
	Appointment *handler.AppointmentHandler
	Review      *handler.ReviewHandler
	AuditLog    *handler.AuditLogHandler
	Health      *handler.HealthHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	collector      *metrics.Collector
	log            *logrus.Logger
}

// NewRouter takes a nil collector when metrics are disabled
func NewRouter(
	log *logrus.Logger,
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	collector *metrics.Collector,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		collector:      collector,
		log:            log,
	}
}

// Setup mounts every route and returns the full handler chain:
// request id, logging, CORS, then the router with its metrics middleware.
func (r *Router) Setup() http.Handler {
	h := r.handlers

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	if r.collector != nil {
		r.router.Use(r.collector.HTTPMiddleware)
		r.router.Handle("/metrics", r.collector.Handler()).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health
	api.HandleFunc("/health/live", h.Health.Live).Methods(http.MethodGet)
	api.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	// Auth routes
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)
	api.Handle("/auth/logout", r.authenticated(h.Auth.Logout)).Methods(http.MethodPost)
	api.Handle("/auth/me", r.authenticated(h.Auth.GetCurrentUser)).Methods(http.MethodGet)

	// Hospitals (public)
	api.HandleFunc("/hospitals", h.Hospital.GetAllHospitals).Methods(http.MethodGet)
	api.HandleFunc("/hospitals/{id}", h.Hospital.GetHospital).Methods(http.MethodGet)

	// Doctors (public)
	api.HandleFunc("/doctors", h.Doctor.SearchDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/available-slots", h.Schedule.GetAvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/chambers", h.Chamber.ListChambers).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/chambers/{chamberId}", h.Chamber.GetChamber).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/reviews", h.Review.GetDoctorReviews).Methods(http.MethodGet)

	// Doctor self-service. The usecases check the caller owns {id}.
	doctorOrAdmin := []entity.RoleName{entity.RoleDoctor, entity.RoleAdmin}
	api.Handle("/doctors/{id}/availability", r.withRole(h.Doctor.SetAvailability, doctorOrAdmin...)).Methods(http.MethodPatch)
	api.Handle("/doctors/{id}/chambers", r.withRole(h.Chamber.CreateChamber, doctorOrAdmin...)).Methods(http.MethodPost)
	api.Handle("/doctors/{id}/chambers/{chamberId}", r.withRole(h.Chamber.UpdateChamber, doctorOrAdmin...)).Methods(http.MethodPut)
	api.Handle("/doctors/{id}/chambers/{chamberId}", r.withRole(h.Chamber.DeleteChamber, doctorOrAdmin...)).Methods(http.MethodDelete)

	api.Handle("/doctors/{id}/schedules", r.withRole(h.Schedule.GetSchedules, doctorOrAdmin...)).Methods(http.MethodGet)
	api.Handle("/doctors/{id}/schedules/generate", r.withRole(h.Schedule.GenerateSchedule, doctorOrAdmin...)).Methods(http.MethodPost)
	api.Handle("/doctors/{id}/schedules/{date}", r.withRole(h.Schedule.GetDaySchedule, doctorOrAdmin...)).Methods(http.MethodGet)
	api.Handle("/doctors/{id}/schedules/{date}", r.withRole(h.Schedule.SaveDaySchedule, doctorOrAdmin...)).Methods(http.MethodPut)
	api.Handle("/doctors/{id}/schedules/{date}/slots/{index}", r.withRole(h.Schedule.SetSlotAvailability, doctorOrAdmin...)).Methods(http.MethodPatch)

	api.Handle("/doctors/{id}/appointments",
		r.withRole(h.Appointment.GetDoctorAppointments, entity.RoleDoctor, entity.RoleStaff, entity.RoleAdmin)).Methods(http.MethodGet)
	api.Handle("/doctors/{id}/reviews", r.withRole(h.Review.CreateReview, entity.RoleUser)).Methods(http.MethodPost)

	// Appointments. /me is registered before /{id} so it is not parsed as an ID.
	api.Handle("/appointments",
		r.withRole(h.Appointment.CreateAppointment, entity.RoleUser, entity.RoleStaff, entity.RoleAdmin)).Methods(http.MethodPost)
	api.Handle("/appointments/me", r.authenticated(h.Appointment.GetMyAppointments)).Methods(http.MethodGet)
	api.Handle("/appointments/{id}", r.authenticated(h.Appointment.GetAppointment)).Methods(http.MethodGet)
	api.Handle("/appointments/{id}/status",
		r.withRole(h.Appointment.UpdateStatus, entity.RoleDoctor, entity.RoleStaff, entity.RoleAdmin)).Methods(http.MethodPatch)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/users", h.Auth.CreateUser).Methods(http.MethodPost)

	admin.HandleFunc("/hospitals", h.Hospital.CreateHospital).Methods(http.MethodPost)
	admin.HandleFunc("/hospitals/{id}", h.Hospital.UpdateHospital).Methods(http.MethodPut)
	admin.HandleFunc("/hospitals/{id}", h.Hospital.DeleteHospital).Methods(http.MethodDelete)

	admin.HandleFunc("/doctors", h.Doctor.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", h.Doctor.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", h.Doctor.DeleteDoctor).Methods(http.MethodDelete)

	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	// CORS wraps the router so preflight requests are answered before route matching
	var chain http.Handler = r.router
	chain = r.corsMiddleware.Handle(chain)
	chain = middleware.Logging(r.log)(chain)
	chain = middleware.RequestID(chain)
	return chain
}

// Mux exposes the underlying router, mainly for route inspection in tests
func (r *Router) Mux() *mux.Router {
	return r.router
}

func (r *Router) authenticated(fn http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(fn)
}

func (r *Router) withRole(fn http.HandlerFunc, roles ...entity.RoleName) http.Handler {
	return r.authMiddleware.Authenticate(middleware.RequireRole(roles...)(fn))
}
