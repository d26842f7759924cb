package middleware

import (
	"context"
	"net/http"

	"github.com/ghaggin/hbnb/internal/model"
)

type viewerKey struct{}

// Viewer is what a page needs to know about who is looking at it.
type Viewer struct {
	Authenticated bool
	UserID        string
}

func ViewerFrom(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerKey{}).(Viewer)
	return v
}

// Auth publishes the Viewer for the request. Only the presence of a token
// is checked; the API rejects stale ones.
func (s *SessionManager) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := s.load(r.Context())
		v := Viewer{
			Authenticated: session.Token != "",
			UserID:        session.UserID,
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), viewerKey{}, v)))
	})
}

// RequireAuth sends anonymous visitors to the listing index with a warning.
func (s *SessionManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Token(r.Context()) == "" {
			s.Flash(r.Context(), model.FlashWarning, "You must be logged in to access this page.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
