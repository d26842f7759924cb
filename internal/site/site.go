package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"

	"github.com/ghaggin/hbnb/internal/config"
	"github.com/ghaggin/hbnb/internal/middleware"
	"github.com/ghaggin/hbnb/internal/template"
	"github.com/ghaggin/hbnb/web"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Site struct {
	log    *zap.Logger
	server *http.Server
}

type Params struct {
	fx.In

	Log        *zap.Logger
	Config     *config.Config
	Sessions   *middleware.SessionManager
	Controller *Controller
	Renderer   *template.Renderer
}

func New(p Params) (*Site, error) {
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}

	h := &handlers{
		log:      p.Log,
		sessions: p.Sessions,
		ctl:      p.Controller,
		renderer: p.Renderer,
		limiter:  newLoginLimiter(p.Config.Login.Rate, p.Config.Login.Burst),
	}

	root := chi.NewRouter()
	root.Use(middleware.RequestID)
	if p.Config.Server.TrustedProxy {
		root.Use(chimw.RealIP)
	}
	root.Use(
		middleware.Logger(p.Log),
		chimw.Recoverer,
	)

	root.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	root.Handle("/static/*", http.StripPrefix("/static", http.FileServer(http.FS(static))))

	root.Group(func(r chi.Router) {
		r.Use(p.Sessions.Wrap, p.Sessions.Auth)

		// Auth
		r.Group(func(r chi.Router) {
			r.Use(p.Sessions.RequireAuth)
			r.Get("/places/{id}/reviews/new", h.newReview)
			r.Post("/places/{id}/reviews", h.createReview)
		})

		// No Auth
		r.Group(func(r chi.Router) {
			r.Get("/", h.index)
			r.Get("/places/{id}", h.place)
			r.Get("/places/{id}/login", h.loginToReview)
			r.Get("/login", h.loginForm)
			r.Post("/login", h.login)
			r.HandleFunc("/logout", h.logout)
		})
	})

	return &Site{
		log: p.Log,
		server: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", p.Config.Server.Host, p.Config.Server.Port),
			Handler: root,
		},
	}, nil
}

func (s *Site) Handler() http.Handler {
	return s.server.Handler
}

// RegisterHooks should be invoked by fx
func RegisterHooks(lc fx.Lifecycle, s *Site) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.server.Shutdown,
	})
}

func (s *Site) Start(_ context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.log.Info("listening", zap.String("addr", ln.Addr().String()))

	go func() {
		err := s.server.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("error serving http", zap.Error(err))
		}
	}()
	return nil
}
