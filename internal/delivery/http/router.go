package http

import (
	"net/http"

	"dental-center-management/internal/delivery/http/handler"
	"dental-center-management/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	patientHandler    *handler.PatientHandler
	incidentHandler   *handler.IncidentHandler
	dashboardHandler  *handler.DashboardHandler
	policyMiddleware  *middleware.PolicyMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	metricsMiddleware *middleware.MetricsMiddleware
	registry          *prometheus.Registry
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	incidentHandler *handler.IncidentHandler,
	dashboardHandler *handler.DashboardHandler,
	policyMiddleware *middleware.PolicyMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	registry *prometheus.Registry,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		patientHandler:    patientHandler,
		incidentHandler:   incidentHandler,
		dashboardHandler:  dashboardHandler,
		policyMiddleware:  policyMiddleware,
		corsMiddleware:    corsMiddleware,
		metricsMiddleware: metricsMiddleware,
		registry:          registry,
	}
}

func (r *Router) Setup() *mux.Router {
	// Observability
	r.router.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.policyMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Patient management (admin)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.policyMiddleware.RequireAdmin)
	patients.HandleFunc("", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	patients.HandleFunc("", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	patients.HandleFunc("/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	patients.HandleFunc("/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Patient detail (any authenticated user; the handler applies the
	// record-scoped policy check)
	patientDetail := api.PathPrefix("/patients").Subrouter()
	patientDetail.Use(r.policyMiddleware.Authenticate)
	patientDetail.HandleFunc("/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)

	// Incident listing (any authenticated user; patients see their own)
	incidentList := api.PathPrefix("/incidents").Subrouter()
	incidentList.Use(r.policyMiddleware.Authenticate)
	incidentList.HandleFunc("", r.incidentHandler.GetAllIncidents).Methods(http.MethodGet)

	// Incident management (admin)
	incidents := api.PathPrefix("/incidents").Subrouter()
	incidents.Use(r.policyMiddleware.RequireAdmin)
	incidents.HandleFunc("", r.incidentHandler.CreateIncident).Methods(http.MethodPost)
	incidents.HandleFunc("/{id}", r.incidentHandler.UpdateIncident).Methods(http.MethodPut)
	incidents.HandleFunc("/{id}", r.incidentHandler.DeleteIncident).Methods(http.MethodDelete)
	incidents.HandleFunc("/{id}/files", r.incidentHandler.UploadFiles).Methods(http.MethodPost)

	// Dashboard and calendar (admin)
	dashboard := api.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(r.policyMiddleware.RequireAdmin)
	dashboard.HandleFunc("", r.dashboardHandler.Summary).Methods(http.MethodGet)

	calendar := api.PathPrefix("/calendar").Subrouter()
	calendar.Use(r.policyMiddleware.RequireAdmin)
	calendar.HandleFunc("", r.dashboardHandler.Calendar).Methods(http.MethodGet)

	// Cross-cutting middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
