package http

import (
	"net/http"

	"clinic-saas-backend/internal/delivery/http/handler"
	"clinic-saas-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	clinicHandler       *handler.ClinicHandler
	professionalHandler *handler.ProfessionalHandler
	patientHandler      *handler.PatientHandler
	appointmentHandler  *handler.AppointmentHandler
	recurrenceHandler   *handler.RecurrenceHandler
	invoiceHandler      *handler.InvoiceHandler
	notificationHandler *handler.NotificationHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	clinicHandler *handler.ClinicHandler,
	professionalHandler *handler.ProfessionalHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	recurrenceHandler *handler.RecurrenceHandler,
	invoiceHandler *handler.InvoiceHandler,
	notificationHandler *handler.NotificationHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		clinicHandler:       clinicHandler,
		professionalHandler: professionalHandler,
		patientHandler:      patientHandler,
		appointmentHandler:  appointmentHandler,
		recurrenceHandler:   recurrenceHandler,
		invoiceHandler:      invoiceHandler,
		notificationHandler: notificationHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/clinic", r.authHandler.RegisterClinic).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Superadmin panel
	superadmin := api.PathPrefix("/superadmin").Subrouter()
	superadmin.Use(r.authMiddleware.Authenticate)
	superadmin.Use(middleware.RequireSuperadmin)
	superadmin.HandleFunc("/clinics", r.clinicHandler.GetAllClinics).Methods(http.MethodGet)
	superadmin.HandleFunc("/clinics/{id}", r.clinicHandler.GetClinic).Methods(http.MethodGet)
	superadmin.HandleFunc("/clinics/{id}", r.clinicHandler.UpdateClinic).Methods(http.MethodPut)

	// Clinic settings (admin)
	clinic := api.PathPrefix("/clinic").Subrouter()
	clinic.Use(r.authMiddleware.Authenticate)
	clinic.Use(middleware.RequireAdmin)
	clinic.HandleFunc("", r.clinicHandler.GetOwnClinic).Methods(http.MethodGet)
	clinic.HandleFunc("", r.clinicHandler.UpdateOwnClinic).Methods(http.MethodPut)
	clinic.HandleFunc("/audit-logs", r.auditLogHandler.GetClinicAuditLogs).Methods(http.MethodGet)
	clinic.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Professional management (admin)
	professionals := api.PathPrefix("/professionals").Subrouter()
	professionals.Use(r.authMiddleware.Authenticate)
	professionals.Use(middleware.RequireAdmin)
	professionals.HandleFunc("", r.professionalHandler.CreateProfessional).Methods(http.MethodPost)
	professionals.HandleFunc("", r.professionalHandler.GetAllProfessionals).Methods(http.MethodGet)
	professionals.HandleFunc("/{id}", r.professionalHandler.GetProfessional).Methods(http.MethodGet)

	// Patients (staff: admin, professional, secretary)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequireStaff)
	patients.HandleFunc("", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	patients.HandleFunc("", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	patients.HandleFunc("/{id}", r.patientHandler.DeactivatePatient).Methods(http.MethodDelete)
	patients.HandleFunc("/{id}/billing-settings", r.patientHandler.UpdateBillingSettings).Methods(http.MethodPut)

	// Appointments (staff)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Use(middleware.RequireStaff)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)

	// Recurrences (staff)
	recurrences := api.PathPrefix("/recurrences").Subrouter()
	recurrences.Use(r.authMiddleware.Authenticate)
	recurrences.Use(middleware.RequireStaff)
	recurrences.HandleFunc("", r.recurrenceHandler.CreateRecurrence).Methods(http.MethodPost)
	recurrences.HandleFunc("", r.recurrenceHandler.GetAllRecurrences).Methods(http.MethodGet)
	recurrences.HandleFunc("/{id}", r.recurrenceHandler.GetRecurrence).Methods(http.MethodGet)
	recurrences.HandleFunc("/{id}", r.recurrenceHandler.UpdateRecurrence).Methods(http.MethodPut)
	recurrences.HandleFunc("/{id}", r.recurrenceHandler.DeactivateRecurrence).Methods(http.MethodDelete)
	recurrences.HandleFunc("/{id}/exceptions", r.recurrenceHandler.AddException).Methods(http.MethodPost)

	// Billing (admin or professional)
	billing := api.PathPrefix("/billing").Subrouter()
	billing.Use(r.authMiddleware.Authenticate)
	billing.Use(middleware.RequireAdminOrProfessional)
	billing.HandleFunc("/invoices/generate", r.invoiceHandler.GeneratePeriod).Methods(http.MethodPost)
	billing.HandleFunc("/invoices", r.invoiceHandler.GetInvoices).Methods(http.MethodGet)
	billing.HandleFunc("/invoices/{id}", r.invoiceHandler.GetInvoice).Methods(http.MethodGet)
	billing.HandleFunc("/invoices/{id}", r.invoiceHandler.DeleteInvoice).Methods(http.MethodDelete)
	billing.HandleFunc("/invoices/{id}/send", r.invoiceHandler.MarkSent).Methods(http.MethodPost)
	billing.HandleFunc("/invoices/{id}/pay", r.invoiceHandler.MarkPaid).Methods(http.MethodPost)
	billing.HandleFunc("/invoices/{id}/items", r.invoiceHandler.AddItem).Methods(http.MethodPost)

	// Notifications (any authenticated user)
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.GetNotifications).Methods(http.MethodGet)
	notifications.HandleFunc("/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
