package middleware

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/ghaggin/hbnb/internal/config"
	"github.com/ghaggin/hbnb/internal/model"
	"go.uber.org/fx"
)

const (
	sessionKey = "session_key"

	// CookieName is the single place the browser carries auth state.
	CookieName = "token"
)

var (
	errSessionNotFound = errors.New("session not found")
)

type SessionManager struct {
	impl *scs.SessionManager
}

type SessionParams struct {
	fx.In

	Config *config.Config
	Store  scs.Store
}

func NewSessionManager(p SessionParams) (*SessionManager, error) {
	gob.Register(&model.Session{})

	sm := &SessionManager{}
	sm.impl = scs.New()
	sm.impl.Store = p.Store
	sm.impl.Lifetime = p.Config.Session.Lifetime
	sm.impl.Cookie.Name = CookieName
	sm.impl.Cookie.HttpOnly = true
	sm.impl.Cookie.Secure = p.Config.Session.CookieSecure
	sm.impl.Cookie.SameSite = http.SameSiteLaxMode

	return sm, nil
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) Get(ctx context.Context) (*model.Session, error) {
	session, ok := s.impl.Get(ctx, sessionKey).(*model.Session)
	if !ok {
		return nil, errSessionNotFound
	}

	return session, nil
}

func (s *SessionManager) load(ctx context.Context) *model.Session {
	session, err := s.Get(ctx)
	if err != nil {
		return &model.Session{}
	}
	return session
}

func (s *SessionManager) save(ctx context.Context, session *model.Session) {
	s.impl.Put(ctx, sessionKey, session)
}

func (s *SessionManager) Token(ctx context.Context) string {
	return s.load(ctx).Token
}

func (s *SessionManager) UserID(ctx context.Context) string {
	return s.load(ctx).UserID
}

// SetToken stores the bearer token under a fresh session id.
func (s *SessionManager) SetToken(ctx context.Context, token string) error {
	if err := s.impl.RenewToken(ctx); err != nil {
		return err
	}

	session := s.load(ctx)
	session.Token = token
	session.UserID = ""
	s.save(ctx, session)
	return nil
}

func (s *SessionManager) SetUserID(ctx context.Context, id string) {
	session := s.load(ctx)
	session.UserID = id
	s.save(ctx, session)
}

// Clear drops the token and everything else held for the visitor.
func (s *SessionManager) Clear(ctx context.Context) error {
	return s.impl.Destroy(ctx)
}

func (s *SessionManager) SetRedirect(ctx context.Context, target string) {
	if !isLocalPath(target) {
		return
	}
	session := s.load(ctx)
	session.RedirectAfterLogin = target
	s.save(ctx, session)
}

// PopRedirect returns the stored post-login target, or fallback.
func (s *SessionManager) PopRedirect(ctx context.Context, fallback string) string {
	session := s.load(ctx)
	target := session.RedirectAfterLogin
	if target == "" {
		return fallback
	}
	session.RedirectAfterLogin = ""
	s.save(ctx, session)
	return target
}

func (s *SessionManager) Flash(ctx context.Context, level model.FlashLevel, message string) {
	session := s.load(ctx)
	session.Flashes = append(session.Flashes, model.Flash{Level: level, Message: message})
	s.save(ctx, session)
}

func (s *SessionManager) PopFlashes(ctx context.Context) []model.Flash {
	session := s.load(ctx)
	if len(session.Flashes) == 0 {
		return nil
	}
	flashes := session.Flashes
	session.Flashes = nil
	s.save(ctx, session)
	return flashes
}

func (s *SessionManager) CacheListings(ctx context.Context, listings []model.Listing) {
	session := s.load(ctx)
	session.Listings = listings
	session.ListingsCached = true
	s.save(ctx, session)
}

func (s *SessionManager) CachedListings(ctx context.Context) ([]model.Listing, bool) {
	session := s.load(ctx)
	return session.Listings, session.ListingsCached
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
