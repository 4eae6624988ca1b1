// Package session keeps per-visitor state (the signed-in user and pending
// flash messages) in the database, keyed by a signed cookie.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ProfileBoard/internal/apperror"
	"ProfileBoard/internal/auth"
	"ProfileBoard/internal/logger"
	"ProfileBoard/internal/models"
	"ProfileBoard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextKey = "session"
	managerKey = "session_manager"

	FlashSuccess = "success"
	FlashError   = "error"
)

// Store persists sessions. *storage.Storage satisfies it.
type Store interface {
	GetSession(ctx context.Context, id string) (models.Session, error)
	SaveSession(ctx context.Context, sess models.Session) error
	DeleteSession(ctx context.Context, id string) error
}

// Session is the request-scoped view of one stored session.
type Session struct {
	id        string
	data      models.SessionData
	expiresAt time.Time
	isNew     bool
	dirty     bool
}

func (s *Session) ID() string { return s.id }

// User returns the signed-in user, or nil. The pointer may be mutated in
// place as long as SetUser is called afterwards.
func (s *Session) User() *models.SessionUser {
	return s.data.User
}

func (s *Session) SetUser(u *models.SessionUser) {
	s.data.User = u
	s.dirty = true
}

func (s *Session) AddFlash(kind, message string) {
	s.data.Flashes = append(s.data.Flashes, models.FlashData{Type: kind, Message: message})
	s.dirty = true
}

// Flashes returns pending flash messages and clears them.
func (s *Session) Flashes() []models.FlashData {
	flashes := s.data.Flashes
	if len(flashes) > 0 {
		s.data.Flashes = nil
		s.dirty = true
	}
	return flashes
}

type Manager struct {
	store      Store
	signer     *auth.TokenSigner
	cookieName string
	ttl        time.Duration
	secure     bool
	log        *logger.Logger
}

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

func NewManager(store Store, signer *auth.TokenSigner, opts Options, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		store:      store,
		signer:     signer,
		cookieName: opts.CookieName,
		ttl:        opts.TTL,
		secure:     opts.Secure,
		log:        log.Named("session"),
	}
}

// Middleware loads the session before the handler and saves it afterwards
// when the handler changed it.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.load(c)
		if err != nil {
			_ = c.Error(apperror.System("session.load", err))
			c.Abort()
			return
		}
		if sess.isNew {
			if err := m.setCookie(c, sess); err != nil {
				_ = c.Error(apperror.System("session.setCookie", err))
				c.Abort()
				return
			}
		}

		c.Set(contextKey, sess)
		c.Set(managerKey, m)
		c.Next()

		if !sess.dirty {
			return
		}
		if err := m.store.SaveSession(c.Request.Context(), models.Session{
			ID:        sess.id,
			Data:      sess.data,
			ExpiresAt: sess.expiresAt,
		}); err != nil {
			m.log.Error("failed to save session", "session_id", sess.id, "error", err)
		}
	}
}

func (m *Manager) load(c *gin.Context) (*Session, error) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie == "" {
		return m.newSession(), nil
	}

	claims, err := m.signer.ValidateToken(cookie)
	if err != nil {
		m.log.Debug("discarding invalid session cookie", "error", err)
		return m.newSession(), nil
	}

	stored, err := m.store.GetSession(c.Request.Context(), claims.SessionID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) || errors.Is(err, storage.ErrSessionExpired) {
			return m.newSession(), nil
		}
		return nil, err
	}
	return &Session{id: stored.ID, data: stored.Data, expiresAt: stored.ExpiresAt}, nil
}

func (m *Manager) newSession() *Session {
	return &Session{
		id:        uuid.New().String(),
		expiresAt: time.Now().Add(m.ttl),
		isNew:     true,
	}
}

func (m *Manager) setCookie(c *gin.Context, sess *Session) error {
	token, err := m.signer.GenerateToken(sess.id)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// FromContext returns the session installed by Middleware.
func FromContext(c *gin.Context) *Session {
	return c.MustGet(contextKey).(*Session)
}

// Renew moves the current session to a fresh id, keeping its data. Call it
// when the signed-in user changes, before the response is written.
func Renew(c *gin.Context) error {
	m := c.MustGet(managerKey).(*Manager)
	sess := FromContext(c)

	if !sess.isNew {
		if err := m.store.DeleteSession(c.Request.Context(), sess.id); err != nil {
			return err
		}
	}
	sess.id = uuid.New().String()
	sess.expiresAt = time.Now().Add(m.ttl)
	sess.isNew = true
	sess.dirty = true
	return m.setCookie(c, sess)
}
