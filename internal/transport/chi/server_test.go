package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	recordrepo "github.com/kailas-cloud/lookup/internal/repository/record"
	healthuc "github.com/kailas-cloud/lookup/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lookup/internal/usecase/search"
)

// --- Mocks ---

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Helpers ---

func newTestServer(delay time.Duration, store healthuc.StorePinger) *Server {
	table := recordrepo.Sample()
	return NewServer(
		searchuc.New(table, delay),
		healthuc.New(table, store),
		zap.NewNop(),
	)
}

func doSearch(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeRecords(t *testing.T, rr *httptest.ResponseRecorder) []recordResponse {
	t.Helper()
	var out []recordResponse
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode records: %v (body %q)", err, rr.Body.String())
	}
	return out
}

func decodeFieldErrors(t *testing.T, rr *httptest.ResponseRecorder) []fieldErrorResponse {
	t.Helper()
	var out validationErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode errors: %v (body %q)", err, rr.Body.String())
	}
	return out.Errors
}

// --- Tests ---

func TestSearchRecords_EmailOnly(t *testing.T) {
	h := NewRouter(newTestServer(0, nil), zap.NewNop())

	rr := doSearch(t, h, `{"email":"jill@gmail.com"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	recs := decodeRecords(t, rr)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Number != "822287" || recs[1].Number != "822286" {
		t.Errorf("unexpected order: %+v", recs)
	}
}

func TestSearchRecords_EmailAndNumber(t *testing.T) {
	h := NewRouter(newTestServer(0, nil), zap.NewNop())

	recs := decodeRecords(t, doSearch(t, h, `{"email":"jam@gmail.com","number":"83-03-47"}`))
	if len(recs) != 1 || recs[0].Email != "jam@gmail.com" || recs[0].Number != "830347" {
		t.Errorf("unexpected result: %+v", recs)
	}
}

func TestSearchRecords_NoMatchIsEmptyArray(t *testing.T) {
	h := NewRouter(newTestServer(0, nil), zap.NewNop())

	rr := doSearch(t, h, `{"email":"jam@gmail.com","number":"99-99-99"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestSearchRecords_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []fieldErrorResponse
	}{
		{
			name:   "invalid email",
			body:   `{"email":"not-an-email"}`,
			fields: []fieldErrorResponse{{Field: "email", Message: "Invalid email format"}},
		},
		{
			name:   "missing email",
			body:   `{}`,
			fields: []fieldErrorResponse{{Field: "email", Message: "Email is required"}},
		},
		{
			name:   "invalid number",
			body:   `{"email":"jim@gmail.com","number":"1234"}`,
			fields: []fieldErrorResponse{{Field: "number", Message: "Invalid number format"}},
		},
		{
			name: "both invalid",
			body: `{"email":"x","number":"12-34"}`,
			fields: []fieldErrorResponse{
				{Field: "email", Message: "Invalid email format"},
				{Field: "number", Message: "Invalid number format"},
			},
		},
		{
			name:   "malformed body",
			body:   `{"email":`,
			fields: []fieldErrorResponse{{Field: "body", Message: "Invalid request body"}},
		},
		{
			name:   "wrong json type",
			body:   `["jim@gmail.com"]`,
			fields: []fieldErrorResponse{{Field: "body", Message: "Invalid request body"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRouter(newTestServer(time.Hour, nil), zap.NewNop())

			start := time.Now()
			rr := doSearch(t, h, tt.body)
			if elapsed := time.Since(start); elapsed > time.Second {
				t.Errorf("validation failure took %v, expected no delay", elapsed)
			}

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			got := decodeFieldErrors(t, rr)
			if len(got) != len(tt.fields) {
				t.Fatalf("errors = %+v, want %+v", got, tt.fields)
			}
			for i := range got {
				if got[i] != tt.fields[i] {
					t.Errorf("errors[%d] = %+v, want %+v", i, got[i], tt.fields[i])
				}
			}
		})
	}
}

func TestSearchRecords_AppliesDelay(t *testing.T) {
	h := NewRouter(newTestServer(50*time.Millisecond, nil), zap.NewNop())

	start := time.Now()
	rr := doSearch(t, h, `{"email":"jim@gmail.com"}`)
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("search returned after %v, want >= 50ms", elapsed)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestSearchRecords_ClientGoneWritesNothing(t *testing.T) {
	s := newTestServer(time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"email":"jim@gmail.com"}`)).
		WithContext(ctx)
	rr := httptest.NewRecorder()

	s.SearchRecords(rr, req)

	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rr.Body.String())
	}
	if rr.Header().Get("Content-Type") != "" {
		t.Error("expected no headers to be written")
	}
}

func TestHandleDomainError_Internal(t *testing.T) {
	s := newTestServer(0, nil)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search", http.NoBody)

	s.handleDomainError(rr, req, errors.New("redis: connection reset by peer"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var body errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "Internal server error" {
		t.Errorf("error = %q, internals must not leak", body.Error)
	}
}

func TestJSONRecoverer(t *testing.T) {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(zap.NewNop()))
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"error":"Internal server error"}` {
		t.Errorf("body = %s", got)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	h := NewRouter(newTestServer(0, nil), zap.NewNop())

	rr := doSearch(t, h, `{"email":"jim@gmail.com"}`)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := NewRouter(newTestServer(0, nil), zap.NewNop())

	req := httptest.NewRequest(http.MethodOptions, "/search", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRouter_CORSOnSimpleRequest(t *testing.T) {
	h := NewRouter(newTestServer(0, nil), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"email":"jim@gmail.com"}`))
	req.Header.Set("Origin", "http://example.org")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := NewRouter(newTestServer(0, nil), zap.NewNop())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", http.NoBody))
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search", http.NoBody))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		store      healthuc.StorePinger
		wantStatus int
		wantBody   string
	}{
		{"static source", nil, http.StatusOK, "ok"},
		{"store up", &mockPinger{}, http.StatusOK, "ok"},
		{"store down", &mockPinger{err: errors.New("dial tcp: refused")}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRouter(newTestServer(0, tt.store), zap.NewNop())

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			var body healthResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Status != tt.wantBody {
				t.Errorf("status = %q, want %q", body.Status, tt.wantBody)
			}
			if body.Checks["records"] != "ok" || body.Records != 7 {
				t.Errorf("records check = %q, count = %d", body.Checks["records"], body.Records)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewRouter(newTestServer(0, nil), zap.NewNop())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "lookup_http_requests_total") {
		t.Error("expected http metrics in exposition")
	}
}
