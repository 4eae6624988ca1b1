package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ProfileBoard/internal/auth"
	"ProfileBoard/internal/logger"
	"ProfileBoard/internal/middleware"
	"ProfileBoard/internal/models"
	"ProfileBoard/internal/session"
	"ProfileBoard/internal/storage"
	"ProfileBoard/internal/web"

	"github.com/gin-gonic/gin"
)

const (
	testCookie   = "sid"
	testPassword = "secret1"
)

type testApp struct {
	t         *testing.T
	engine    *gin.Engine
	store     *storage.Storage
	uploadDir string
	cookie    *http.Cookie
}

// failingStore lets tests force data-layer failures.
type failingStore struct {
	UserStore
	failUpdate bool
	failGet    bool
	userGone   bool
}

func (f *failingStore) UpdateUserInfoByID(ctx context.Context, id int64, upd models.UserUpdate) error {
	if f.failUpdate {
		return context.DeadlineExceeded
	}
	return f.UserStore.UpdateUserInfoByID(ctx, id, upd)
}

func (f *failingStore) GetUserByName(ctx context.Context, name string) (models.User, error) {
	if f.failGet {
		return models.User{}, context.DeadlineExceeded
	}
	return f.UserStore.GetUserByName(ctx, name)
}

func (f *failingStore) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	if f.userGone {
		return models.User{}, storage.ErrUserNotFound
	}
	if f.failGet {
		return models.User{}, context.DeadlineExceeded
	}
	return f.UserStore.GetUserByID(ctx, id)
}

func newTestApp(t *testing.T) (*testApp, *failingStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	st, err := storage.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	users := &failingStore{UserStore: st}
	uploadDir := filepath.Join(dir, "img")
	h := New(users, Options{UploadDir: uploadDir, MaxAvatarBytes: 1 << 20}, nil)
	mgr := session.NewManager(st, auth.NewTokenSigner("test", time.Hour), session.Options{
		CookieName: testCookie,
		TTL:        time.Hour,
	}, nil)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.ErrorHandler(logger.Nop()), mgr.Middleware())
	r.GET("/signup", middleware.CheckNotLogin(), h.SignupPage)
	r.POST("/signup", middleware.CheckNotLogin(), h.Signup)
	r.GET("/signin", middleware.CheckNotLogin(), h.SigninPage)
	r.POST("/signin", middleware.CheckNotLogin(), h.Signin)
	member := r.Group("/", middleware.CheckLogin())
	member.GET("/signout", h.Signout)
	member.GET("/user", h.Profile)
	member.POST("/user/name", h.UpdateName)
	member.POST("/user/password", h.UpdatePassword)
	member.POST("/user/avatar", h.UpdateAvatar)
	member.POST("/user/bio", h.UpdateBio)

	return &testApp{t: t, engine: r, store: st, uploadDir: uploadDir}, users
}

func newUser(name string) models.User {
	return models.User{Name: name, PasswordHash: "x", Avatar: "default.png", Gender: "x", Bio: "hello"}
}

// seedUser creates a user with testPassword and signs in as them.
func (a *testApp) seedUser(name string) models.User {
	a.t.Helper()
	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		a.t.Fatalf("HashPassword() error: %v", err)
	}
	u := newUser(name)
	u.PasswordHash = hash
	u.ID, err = a.store.CreateUser(context.Background(), u)
	if err != nil {
		a.t.Fatalf("CreateUser() error: %v", err)
	}

	w := a.postForm("/signin", url.Values{"name": {name}, "password": {testPassword}})
	if loc := w.Header().Get("Location"); loc != "/user" {
		a.t.Fatalf("signin redirected to %q, want /user", loc)
	}
	return u
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			a.cookie = c
		}
	}
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

// postMultipart sends fields plus an optional file under fileField.
func (a *testApp) postMultipart(path string, fields map[string]string, fileField, fileName string, content []byte) *httptest.ResponseRecorder {
	a.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			a.t.Fatalf("WriteField() error: %v", err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			a.t.Fatalf("CreateFormFile() error: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			a.t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		a.t.Fatalf("multipart close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.do(req)
}

// expectRedirectFlash checks the redirect target and that the next page
// shows the flash message.
func (a *testApp) expectRedirectFlash(w *httptest.ResponseRecorder, to, kind, message string) {
	a.t.Helper()
	if w.Code != http.StatusFound {
		a.t.Fatalf("status = %d, want 302 (body %q)", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != to {
		a.t.Fatalf("Location = %q, want %q", loc, to)
	}
	page := a.get(to)
	want := `<div class="flash flash-` + kind + `">` + message + `</div>`
	if !strings.Contains(page.Body.String(), want) {
		a.t.Errorf("page %s should contain %q, got:\n%s", to, want, page.Body.String())
	}
}

func (a *testApp) sessionUser() *models.SessionUser {
	a.t.Helper()
	claims, err := auth.NewTokenSigner("test", time.Hour).ValidateToken(a.cookie.Value)
	if err != nil {
		a.t.Fatalf("invalid session cookie: %v", err)
	}
	sess, err := a.store.GetSession(context.Background(), claims.SessionID)
	if err != nil {
		a.t.Fatalf("GetSession() error: %v", err)
	}
	return sess.Data.User
}
