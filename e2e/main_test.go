//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2/memstore"
	"github.com/ghaggin/hbnb/internal/api"
	"github.com/ghaggin/hbnb/internal/config"
	"github.com/ghaggin/hbnb/internal/middleware"
	"github.com/ghaggin/hbnb/internal/model"
	"github.com/ghaggin/hbnb/internal/site"
	"github.com/ghaggin/hbnb/internal/template"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	appURL string
)

func TestMain(m *testing.M) {
	os.Exit(runTestMain(m))
}

func runTestMain(m *testing.M) int {
	apiSrv := httptest.NewServer(fakeAPI())
	defer apiSrv.Close()

	cfg := config.Default()
	cfg.API.BaseURL = apiSrv.URL + "/api/v1"
	log := zap.NewNop()

	sm, err := middleware.NewSessionManager(middleware.SessionParams{
		Config: cfg,
		Store:  memstore.NewWithCleanupInterval(time.Hour),
	})
	if err != nil {
		fmt.Printf("Failed to create session manager: %v\n", err)
		return 1
	}
	ctl, err := site.NewController(site.ControllerParams{
		Logger:   log,
		API:      api.NewClient(cfg.API.BaseURL, nil, log),
		Sessions: sm,
	})
	if err != nil {
		fmt.Printf("Failed to create controller: %v\n", err)
		return 1
	}
	s, err := site.New(site.Params{
		Log:        log,
		Config:     cfg,
		Sessions:   sm,
		Controller: ctl,
		Renderer:   template.New(),
	})
	if err != nil {
		fmt.Printf("Failed to create site: %v\n", err)
		return 1
	}

	appSrv := httptest.NewServer(s.Handler())
	defer appSrv.Close()
	appURL = appSrv.URL

	return m.Run()
}

func fakeAPI() http.Handler {
	places := []model.Listing{
		{ID: "p1", Title: "Beach Hut", Price: 10},
		{ID: "p2", Title: "City Flat", Price: 45},
		{ID: "p3", Title: "Mountain Lodge", Price: 120},
	}
	reply := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var creds model.Credentials
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds.Email != "guest@example.com" || creds.Password != "secret" {
				reply(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
				return
			}
			reply(w, http.StatusOK, model.AccessToken{AccessToken: "guest-token"})
		})
		r.Get("/places/", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, places)
		})
		r.Get("/places/{id}", func(w http.ResponseWriter, r *http.Request) {
			for _, p := range places {
				if p.ID == chi.URLParam(r, "id") {
					reply(w, http.StatusOK, p)
					return
				}
			}
			reply(w, http.StatusNotFound, map[string]string{"error": "Place not found"})
		})
		r.Get("/places/{id}/reviews", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, []model.Review{})
		})
		r.Get("/protected/", func(w http.ResponseWriter, _ *http.Request) {
			reply(w, http.StatusOK, map[string]string{"message": "Hello, user guest"})
		})
	})
	return r
}
