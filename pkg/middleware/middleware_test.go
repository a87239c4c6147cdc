package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/pdf-editor/pkg/middleware"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestSystem_Order(t *testing.T) {
	var order []string
	mw := middleware.New()
	for _, name := range []string{"outer", "inner"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	h := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := strings.Join(order, ","); got != "outer,inner,handler" {
		t.Errorf("order = %s, want outer,inner,handler", got)
	}
}

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://localhost:3000"},
		AllowCredentials: true,
		MaxAge:           7200,
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
		wantCalled bool
	}{
		{"allowed origin", http.MethodGet, "http://localhost:3000", "http://localhost:3000", true},
		{"foreign origin", http.MethodGet, "http://evil.com", "", true},
		{"no origin", http.MethodGet, "", "", true},
		{"preflight", http.MethodOptions, "http://localhost:3000", "http://localhost:3000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantOrigin != "" {
				if rec.Header().Get("Access-Control-Max-Age") != "7200" {
					t.Error("Max-Age not set")
				}
				if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
					t.Error("Allow-Credentials not set")
				}
			}
		})
	}
}

func TestCORSConfig_Env(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg := &middleware.CORSConfig{}
	err := cfg.Finalize(&middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
	})
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.Enabled {
		t.Error("Enabled not loaded from env")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[0] != "http://a.test" || cfg.Origins[1] != "http://b.test" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
	if cfg.MaxAge != 3600 || len(cfg.AllowedMethods) == 0 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, "short and stout")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/documents?x=1", nil))

	out := buf.String()
	for _, want := range []string{"msg=request", "method=GET", "uri=\"/api/documents?x=1\"", "status=418", "bytes=15", "duration="} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestTrimSlash(t *testing.T) {
	var seen string
	h := middleware.TrimSlash()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
		ok(w, r)
	}))

	t.Run("get redirects", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents/?page=1", nil))

		if rec.Code != http.StatusMovedPermanently {
			t.Fatalf("status = %d, want 301", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/api/documents?page=1" {
			t.Errorf("Location = %q", loc)
		}
	})

	t.Run("post is rewritten", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/documents/", strings.NewReader("body")))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if seen != "/api/documents" {
			t.Errorf("handler saw %q", seen)
		}
	})

	t.Run("root preserved", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK || seen != "/" {
			t.Errorf("status = %d, path = %q", rec.Code, seen)
		}
	})
}
