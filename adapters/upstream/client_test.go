package upstream_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medplant/plantgate/adapters/upstream"
	"github.com/medplant/plantgate/domain/gateway"
	"github.com/medplant/plantgate/domain/session"
)

func signupFixture() session.SignupRequest {
	return session.SignupRequest{
		FirstName:       "Ada",
		LastName:        "Obi",
		Email:           "ada@example.com",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
		AgreeToTerms:    true,
	}
}

func newClient(t *testing.T, baseURL string) *upstream.Client {
	t.Helper()
	c, err := upstream.New(upstream.Config{BaseURL: baseURL}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"valid", "https://api.medplant.example", false},
		{"valid with trailing slash", "http://localhost:8000/", false},
		{"invalid URL", "://invalid", true},
		{"missing scheme", "localhost:8000", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := upstream.New(upstream.Config{BaseURL: tt.baseURL}, zerolog.Nop())
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/auth/login" {
			t.Errorf("request = %s %s, want POST /api/auth/login", r.Method, r.URL.Path)
		}
		// Upstream speaks the OAuth2 password flow
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %s, want form encoding", ct)
		}
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		if form.Get("username") != "user@example.com" {
			t.Errorf("username = %s, want user@example.com", form.Get("username"))
		}
		if form.Get("password") != "Secret123" {
			t.Errorf("password = %s", form.Get("password"))
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"tok-abc123","token_type":"bearer","user":{"email":"user@example.com","first_name":"Ada","last_name":"Obi"}}`)
	}))
	defer server.Close()

	auth, err := newClient(t, server.URL).Login(context.Background(), "user@example.com", "Secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if string(auth.Token) != "tok-abc123" {
		t.Errorf("Token = %s, want upstream access_token verbatim", auth.Token)
	}

	var user map[string]string
	if err := json.Unmarshal(auth.User, &user); err != nil {
		t.Fatalf("unmarshal user: %v", err)
	}
	if user["first_name"] != "Ada" {
		t.Errorf("user.first_name = %s, want Ada", user["first_name"])
	}
}

func TestLogin_UpstreamRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(401)
		io.WriteString(w, `{"detail":"Incorrect email or password"}`)
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).Login(context.Background(), "user@example.com", "wrong")
	gerr, ok := err.(*gateway.Error)
	if !ok {
		t.Fatalf("error type = %T, want *gateway.Error", err)
	}
	if gerr.Status != 401 {
		t.Errorf("Status = %d, want 401 passed through", gerr.Status)
	}
	if gerr.Message != "Incorrect email or password" {
		t.Errorf("Message = %q", gerr.Message)
	}
}

func TestLogin_MissingAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"user":{"email":"user@example.com"}}`)
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).Login(context.Background(), "user@example.com", "Secret123")
	gerr, ok := err.(*gateway.Error)
	if !ok {
		t.Fatalf("error type = %T, want *gateway.Error", err)
	}
	if gerr.Kind != gateway.KindInternal {
		t.Errorf("Kind = %s, want internal for broken contract", gerr.Kind)
	}
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"plants_identified":4}`)
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).UserStats(context.Background(), "tok-xyz")
	if err != nil {
		t.Fatalf("UserStats() error = %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Errorf("Authorization = %q, want Bearer tok-xyz", gotAuth)
	}
}

func TestPlantDetails_PercentEncoding(t *testing.T) {
	names := []string{
		"Ocimum gratissimum",
		"Aloe vera/true",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			var decoded string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// The escaped form must never contain a raw space
				if strings.Contains(r.URL.EscapedPath(), " ") {
					t.Errorf("raw space in path: %s", r.URL.EscapedPath())
				}
				decoded = strings.TrimPrefix(r.URL.Path, "/api/plants/")
				io.WriteString(w, `{"scientific_name":"`+name+`"}`)
			}))
			defer server.Close()

			if _, err := newClient(t, server.URL).PlantDetails(context.Background(), "tok", name); err != nil {
				t.Fatalf("PlantDetails() error = %v", err)
			}

			// Round-trip: upstream decode recovers the original string
			if decoded != name {
				t.Errorf("decoded = %q, want %q", decoded, name)
			}
		})
	}
}

func TestIdentify_StreamsBodyUnchanged(t *testing.T) {
	const boundary = "----TestBoundary42"
	raw := "--" + boundary + "\r\n" +
		"Content-Disposition: form-data; name=\"file\"; filename=\"leaf.jpg\"\r\n" +
		"Content-Type: image/jpeg\r\n\r\n" +
		"binary-bytes-here\r\n" +
		"--" + boundary + "--\r\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); !strings.Contains(ct, boundary) {
			t.Errorf("Content-Type = %s, boundary not forwarded", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != raw {
			t.Error("multipart body was re-encoded")
		}
		io.WriteString(w, `{"status":"success","data":{"plant_name":"Scent leaf","confidence":0.93}}`)
	}))
	defer server.Close()

	payload, err := newClient(t, server.URL).Identify(context.Background(), "tok",
		"multipart/form-data; boundary="+boundary, strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if !strings.Contains(string(payload), "Scent leaf") {
		t.Errorf("payload = %s", payload)
	}
}

func TestDo_ValidationPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(422)
		io.WriteString(w, `{"detail":[{"field":"email","message":"invalid"}]}`)
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).ValidateSession(context.Background(), "tok")
	gerr, ok := err.(*gateway.Error)
	if !ok {
		t.Fatalf("error type = %T, want *gateway.Error", err)
	}
	if gerr.Kind != gateway.KindValidation {
		t.Errorf("Kind = %s, want validation", gerr.Kind)
	}
	if !strings.Contains(string(gerr.Details), `"email"`) {
		t.Errorf("Details = %s, upstream detail must pass through", gerr.Details)
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	// Point at a server that is already closed: connection refused
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newClient(t, server.URL).Identifications(context.Background(), "tok")
	gerr, ok := err.(*gateway.Error)
	if !ok {
		t.Fatalf("error type = %T, want *gateway.Error", err)
	}
	if gerr.Kind != gateway.KindInternal {
		t.Errorf("Kind = %s, want internal", gerr.Kind)
	}
	if gerr.Status != 500 || gerr.Message != "Internal server error" {
		t.Errorf("got %d %q, network failures map to local 500", gerr.Status, gerr.Message)
	}
}

func TestDeleteAndFavoritePaths(t *testing.T) {
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path)
		io.WriteString(w, `{"message":"ok","is_favorite":true}`)
	}))
	defer server.Close()

	c := newClient(t, server.URL)
	if _, err := c.DeleteIdentification(context.Background(), "tok", "17"); err != nil {
		t.Fatalf("DeleteIdentification() error = %v", err)
	}
	if _, err := c.ToggleFavorite(context.Background(), "tok", "17"); err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}

	want := []string{
		"DELETE /api/user/identifications/17",
		"POST /api/user/identifications/17/favorite",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSignup_SnakeCaseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var parsed map[string]interface{}
		if err := json.Unmarshal(body, &parsed); err != nil {
			t.Fatalf("body is not JSON: %v", err)
		}
		for _, field := range []string{"first_name", "last_name", "email", "password", "confirm_password"} {
			if _, ok := parsed[field]; !ok {
				t.Errorf("missing upstream field %s", field)
			}
		}
		io.WriteString(w, `{"message":"User created successfully","access_token":"tok-new","user":{"email":"ada@example.com"}}`)
	}))
	defer server.Close()

	auth, err := newClient(t, server.URL).Signup(context.Background(), signupFixture())
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if string(auth.Token) != "tok-new" {
		t.Errorf("Token = %s, want tok-new", auth.Token)
	}
	if auth.Message != "User created successfully" {
		t.Errorf("Message = %q", auth.Message)
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404) // any response means reachable
	}))
	defer server.Close()

	if err := newClient(t, server.URL).HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	server.Close()
	if err := newClient(t, server.URL).HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() succeeded against closed server")
	}
}
