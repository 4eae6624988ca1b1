package middleware

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ProfileBoard/internal/auth"
	"ProfileBoard/internal/logger"
	"ProfileBoard/internal/session"
	"ProfileBoard/internal/storage"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionEngine(t *testing.T) *gin.Engine {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "mw.db"))
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	mgr := session.NewManager(st, auth.NewTokenSigner("test", time.Hour), session.Options{
		CookieName: "sid",
		TTL:        time.Hour,
	}, nil)
	r := gin.New()
	r.Use(mgr.Middleware())
	return r
}

func TestRateLimitByIP(t *testing.T) {
	r := gin.New()
	r.POST("/signin", RateLimitByIP(2), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/signin", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := send("10.0.0.1"); w.Code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d, want 204", i, w.Code)
		}
	}
	w := send("10.0.0.1")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), "请求过于频繁") {
		t.Errorf("body = %q", w.Body.String())
	}
	if w := send("10.0.0.2"); w.Code != http.StatusNoContent {
		t.Errorf("other client should not be limited, status = %d", w.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimitByIP(0), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d", i, w.Code)
		}
	}
}

func TestInviteCode(t *testing.T) {
	tcases := map[string]struct {
		configured string
		sent       string
		wantPass   bool
	}{
		"not_configured": {configured: "", sent: "", wantPass: true},
		"match":          {configured: "letmein", sent: "letmein", wantPass: true},
		"mismatch":       {configured: "letmein", sent: "nope", wantPass: false},
		"missing":        {configured: "letmein", sent: "", wantPass: false},
	}

	for name, tc := range tcases {
		t.Run(name, func(t *testing.T) {
			r := newSessionEngine(t)
			r.POST("/signup", InviteCode(tc.configured), func(c *gin.Context) { c.Status(http.StatusCreated) })

			form := url.Values{"inviteCode": {tc.sent}}
			req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if tc.wantPass {
				if w.Code != http.StatusCreated {
					t.Errorf("status = %d, want 201", w.Code)
				}
				return
			}
			if w.Code != http.StatusFound || w.Header().Get("Location") != "/signup" {
				t.Errorf("status = %d, Location = %q, want 302 /signup", w.Code, w.Header().Get("Location"))
			}
		})
	}
}

func TestCheckLoginRedirectsGuests(t *testing.T) {
	r := newSessionEngine(t)
	r.GET("/user", CheckLogin(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/signin", CheckNotLogin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user", nil))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/signin" {
		t.Errorf("status = %d, Location = %q, want 302 /signin", w.Code, w.Header().Get("Location"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/signin", nil))
	if w.Code != http.StatusOK {
		t.Errorf("guest on /signin: status = %d, want 200", w.Code)
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("error.tmpl").Parse(`<h1>{{.title}}</h1>`)))
	r.Use(ErrorHandler(logger.Nop()))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("db down"))
		c.Abort()
	})
	r.GET("/written", func(c *gin.Context) {
		c.String(http.StatusTeapot, "already")
		_ = c.Error(errors.New("late"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "服务器错误") {
		t.Errorf("body = %q", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
	if w.Code != http.StatusTeapot || w.Body.String() != "already" {
		t.Errorf("written response should be kept, got %d %q", w.Code, w.Body.String())
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput("debug", "json", &buf)

	r := gin.New()
	r.Use(RequestLogger(log, "/healthz"))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if buf.Len() != 0 {
		t.Fatalf("skipped path should not be logged, got %q", buf.String())
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	out := buf.String()
	for _, want := range []string{`"path":"/missing"`, `"status":404`, `"level":"warn"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}
