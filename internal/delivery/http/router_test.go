package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dental-center-management/internal/delivery/http/handler"
	"dental-center-management/internal/delivery/http/middleware"
	"dental-center-management/internal/infrastructure/storage"
	"dental-center-management/internal/policy"
	"dental-center-management/internal/store"
	"dental-center-management/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Redirect string          `json:"redirect"`
}

func newTestRouter(t *testing.T) (*mux.Router, *store.SessionStore) {
	t.Helper()

	kv := storage.NewMemory()
	log := logrus.New()
	log.SetOutput(io.Discard)

	sessions := store.NewSessionStore(kv, log)
	entities := store.NewEntityStore(kv, log)
	ctx := context.Background()
	if err := sessions.Initialize(ctx); err != nil {
		t.Fatalf("initialize sessions: %v", err)
	}
	if err := entities.Initialize(ctx); err != nil {
		t.Fatalf("initialize entities: %v", err)
	}

	v := validator.NewValidator()
	pol := policy.Policy{}
	registry := prometheus.NewRegistry()

	router := NewRouter(
		handler.NewAuthHandler(sessions, v),
		handler.NewPatientHandler(entities, pol, v),
		handler.NewIncidentHandler(entities, v),
		handler.NewDashboardHandler(entities),
		middleware.NewPolicyMiddleware(sessions, pol),
		middleware.NewCORSMiddleware("*"),
		middleware.NewMetricsMiddleware(registry),
		registry,
	)
	return router.Setup(), sessions
}

func do(t *testing.T, router *mux.Router, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func login(t *testing.T, router *mux.Router, email, password string) {
	t.Helper()
	rec, _ := do(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"`+email+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login as %s: status %d, body %s", email, rec.Code, rec.Body)
	}
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"ok"`)) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)

	// No session yet: /me denies toward the login view.
	rec, env := do(t, router, http.MethodGet, "/api/v1/auth/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated /me status = %d", rec.Code)
	}
	if env.Redirect != "/login" {
		t.Errorf("unauthenticated /me redirect = %q, want /login", env.Redirect)
	}

	// Wrong credentials: one generic message, no field detail.
	rec, env = do(t, router, http.MethodPost, "/api/v1/auth/login",
		`{"email":"admin@entnt.in","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", rec.Code)
	}
	if env.Message != "Invalid email or password" {
		t.Errorf("bad login message = %q", env.Message)
	}

	login(t, router, "admin@entnt.in", "admin123")

	rec, env = do(t, router, http.MethodGet, "/api/v1/auth/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/me status = %d", rec.Code)
	}
	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("decode /me data: %v", err)
	}
	if me.Email != "admin@entnt.in" || me.Role != "Admin" {
		t.Errorf("/me = %+v", me)
	}
	if bytes.Contains(env.Data, []byte("admin123")) {
		t.Error("/me leaks the password")
	}

	rec, _ = do(t, router, http.MethodPost, "/api/v1/auth/logout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	rec, _ = do(t, router, http.MethodGet, "/api/v1/auth/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("/me after logout status = %d", rec.Code)
	}
}

func TestLoginValidatesRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing password", `{"email":"admin@entnt.in"}`},
		{"malformed email", `{"email":"not-an-email","password":"x"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, router, http.MethodPost, "/api/v1/auth/login", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestAdminOnlyRoutes(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router, "john@entnt.in", "patient123")

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"list patients", http.MethodGet, "/api/v1/patients", ""},
		{"create patient", http.MethodPost, "/api/v1/patients", `{"name":"X Y","dob":"1990-01-01","contact":"1"}`},
		{"update patient", http.MethodPut, "/api/v1/patients/p1", `{"name":"X Y"}`},
		{"delete patient", http.MethodDelete, "/api/v1/patients/p1", ""},
		{"create incident", http.MethodPost, "/api/v1/incidents", `{"patientId":"p1","title":"T","appointmentDate":"2025-09-01T10:00:00"}`},
		{"dashboard", http.MethodGet, "/api/v1/dashboard", ""},
		{"calendar", http.MethodGet, "/api/v1/calendar?month=2025-07", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, tt.method, tt.target, tt.body)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403", rec.Code)
			}
			if env.Redirect != "/" {
				t.Errorf("redirect = %q, want /", env.Redirect)
			}
		})
	}
}

func TestPatientCanViewRecordsAndOwnIncidents(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router, "john@entnt.in", "patient123")

	// As shipped, any authenticated user may open a patient detail.
	rec, env := do(t, router, http.MethodGet, "/api/v1/patients/p1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("patient detail status = %d, body %s", rec.Code, rec.Body)
	}
	var patient struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(env.Data, &patient); err != nil {
		t.Fatalf("decode patient: %v", err)
	}
	if patient.Name != "John Doe" {
		t.Errorf("patient = %+v", patient)
	}

	// Incident listing is scoped to the session's own patient record.
	rec, env = do(t, router, http.MethodGet, "/api/v1/incidents", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("incident list status = %d", rec.Code)
	}
	var incidents []struct {
		PatientID string `json:"patientId"`
	}
	if err := json.Unmarshal(env.Data, &incidents); err != nil {
		t.Fatalf("decode incidents: %v", err)
	}
	for _, in := range incidents {
		if in.PatientID != "p1" {
			t.Errorf("patient sees incident of %q", in.PatientID)
		}
	}
	if len(incidents) != 1 {
		t.Errorf("incident count = %d, want 1", len(incidents))
	}
}

func TestPatientLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router, "admin@entnt.in", "admin123")

	rec, env := do(t, router, http.MethodPost, "/api/v1/patients",
		`{"name":"Jane Roe","dob":"1985-02-20","contact":"555-0101","healthInfo":"None"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created patient: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created patient has no id")
	}

	rec, _ = do(t, router, http.MethodPut, "/api/v1/patients/"+created.ID, `{"contact":"555-0202"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}

	rec, _ = do(t, router, http.MethodPut, "/api/v1/patients/missing", `{"contact":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("update of unknown id status = %d, want 404", rec.Code)
	}

	rec, _ = do(t, router, http.MethodDelete, "/api/v1/patients/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec, _ = do(t, router, http.MethodGet, "/api/v1/patients/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("detail of deleted patient status = %d, want 404", rec.Code)
	}
}

func TestDeletePatientCascadesOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router, "admin@entnt.in", "admin123")

	rec, _ := do(t, router, http.MethodDelete, "/api/v1/patients/p1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	_, env := do(t, router, http.MethodGet, "/api/v1/patients", "")
	var patients []json.RawMessage
	if err := json.Unmarshal(env.Data, &patients); err != nil {
		t.Fatalf("decode patients: %v", err)
	}
	if len(patients) != 0 {
		t.Errorf("patients after cascade = %d, want 0", len(patients))
	}

	_, env = do(t, router, http.MethodGet, "/api/v1/incidents", "")
	var incidents []json.RawMessage
	if err := json.Unmarshal(env.Data, &incidents); err != nil {
		t.Fatalf("decode incidents: %v", err)
	}
	if len(incidents) != 0 {
		t.Errorf("incidents after cascade = %d, want 0", len(incidents))
	}
}

func TestIncidentLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router, "admin@entnt.in", "admin123")

	rec, env := do(t, router, http.MethodPost, "/api/v1/incidents",
		`{"patientId":"p1","title":"Checkup","description":"Routine","appointmentDate":"2025-09-15T11:30:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created struct {
		ID     string          `json:"id"`
		Status string          `json:"status"`
		Files  json.RawMessage `json:"files"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created incident: %v", err)
	}
	if created.Status != "Pending" {
		t.Errorf("default status = %q", created.Status)
	}
	if string(created.Files) != "[]" {
		t.Errorf("files = %s, want []", created.Files)
	}

	rec, _ = do(t, router, http.MethodPut, "/api/v1/incidents/"+created.ID,
		`{"status":"Completed","cost":150}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}

	rec, _ = do(t, router, http.MethodPut, "/api/v1/incidents/"+created.ID,
		`{"status":"NotAStatus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status update status = %d, want 400", rec.Code)
	}

	rec, _ = do(t, router, http.MethodDelete, "/api/v1/incidents/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec, _ = do(t, router, http.MethodDelete, "/api/v1/incidents/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestUploadFilesOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	login(t, router, "admin@entnt.in", "admin123")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", "report.txt")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte("treatment notes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/incidents/i1/files", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	var incident struct {
		Files []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"files"`
	}
	if err := json.Unmarshal(env.Data, &incident); err != nil {
		t.Fatalf("decode incident: %v", err)
	}
	// The two seeded attachments plus the upload, appended last.
	if len(incident.Files) != 3 {
		t.Fatalf("file count = %d, want 3", len(incident.Files))
	}
	last := incident.Files[2]
	if last.Name != "report.txt" {
		t.Errorf("uploaded file name = %q", last.Name)
	}
	if !strings.HasPrefix(last.URL, "data:") || !strings.Contains(last.URL, ";base64,") {
		t.Errorf("uploaded file url = %q, want a data URL", last.URL)
	}

	// No files in the form is a client error.
	rec, _ = do(t, router, http.MethodPost, "/api/v1/incidents/i1/files", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty upload status = %d, want 400", rec.Code)
	}

	// Unknown incident.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/incidents/missing/files", strings.NewReader(""))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("upload to unknown incident status = %d, want 404", rec.Code)
	}
}

func TestSessionSurvivesRouterRestart(t *testing.T) {
	kv := storage.NewMemory()
	log := logrus.New()
	log.SetOutput(io.Discard)
	ctx := context.Background()

	first := store.NewSessionStore(kv, log)
	if err := first.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if ok, err := first.Login(ctx, "admin@entnt.in", "admin123"); err != nil || !ok {
		t.Fatalf("login: ok=%v err=%v", ok, err)
	}

	second := store.NewSessionStore(kv, log)
	if err := second.Initialize(ctx); err != nil {
		t.Fatalf("re-initialize: %v", err)
	}
	if user := second.CurrentUser(); user == nil || user.Email != "admin@entnt.in" {
		t.Errorf("restored session = %+v", user)
	}
}
