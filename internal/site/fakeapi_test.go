package site

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ghaggin/hbnb/internal/model"
	"github.com/go-chi/chi/v5"
)

type fakeUser struct {
	id       string
	password string
	token    string
}

// fakeAPI stands in for the HBnB REST API and counts calls per route.
type fakeAPI struct {
	mu      sync.Mutex
	hits    map[string]int
	places  []model.Listing
	reviews map[string][]model.Review
	users   map[string]fakeUser

	server *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	f := &fakeAPI{
		hits: map[string]int{},
		places: []model.Listing{
			{ID: "p1", Title: "Beach Hut", Price: 10, Description: "Sandy", OwnerID: "owner",
				Owner: &model.User{ID: "owner", FirstName: "Olive", LastName: "Owner"}},
			{ID: "p2", Title: "City Flat", Price: 45},
			{ID: "p3", Title: "Mountain Lodge", Price: 120},
		},
		reviews: map[string][]model.Review{
			"p1": {{ID: "r1", PlaceID: "p1", UserName: "Gus Guest", Rating: 4, Text: "Nice view"}},
		},
		users: map[string]fakeUser{
			"guest@example.com": {id: "guest", password: "secret", token: "guest-token"},
			"owner@example.com": {id: "owner", password: "secret", token: "owner-token"},
		},
	}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", f.login)
		r.Get("/places/", f.listPlaces)
		r.Get("/places/{id}", f.getPlace)
		r.Get("/places/{id}/reviews", f.listReviews)
		r.Post("/reviews/", f.createReview)
		r.Get("/protected/", f.protected)
	})

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) URL() string {
	return f.server.URL + "/api/v1"
}

func (f *fakeAPI) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[name]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.hits {
		n += v
	}
	return n
}

func (f *fakeAPI) userFor(r *http.Request) (fakeUser, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	for _, u := range f.users {
		if token != "" && u.token == token {
			return u, true
		}
	}
	return fakeUser{}, false
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	f.hit("login")
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		reply(w, http.StatusBadRequest, map[string]string{"error": "Invalid input data"})
		return
	}
	u, ok := f.users[creds.Email]
	if !ok || u.password != creds.Password {
		reply(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	reply(w, http.StatusOK, model.AccessToken{AccessToken: u.token})
}

func (f *fakeAPI) listPlaces(w http.ResponseWriter, _ *http.Request) {
	f.hit("places")
	f.mu.Lock()
	places := append([]model.Listing(nil), f.places...)
	f.mu.Unlock()
	reply(w, http.StatusOK, places)
}

func (f *fakeAPI) getPlace(w http.ResponseWriter, r *http.Request) {
	f.hit("place")
	id := chi.URLParam(r, "id")
	for _, p := range f.places {
		if p.ID == id {
			reply(w, http.StatusOK, p)
			return
		}
	}
	reply(w, http.StatusNotFound, map[string]string{"error": "Place not found"})
}

func (f *fakeAPI) listReviews(w http.ResponseWriter, r *http.Request) {
	f.hit("reviews")
	f.mu.Lock()
	reviews := f.reviews[chi.URLParam(r, "id")]
	f.mu.Unlock()
	if reviews == nil {
		reviews = []model.Review{}
	}
	reply(w, http.StatusOK, reviews)
}

func (f *fakeAPI) createReview(w http.ResponseWriter, r *http.Request) {
	f.hit("submit")
	u, ok := f.userFor(r)
	if !ok {
		reply(w, http.StatusUnauthorized, map[string]string{"msg": "Missing Authorization Header"})
		return
	}
	var nr model.NewReview
	if err := json.NewDecoder(r.Body).Decode(&nr); err != nil {
		reply(w, http.StatusBadRequest, map[string]string{"error": "Invalid input data"})
		return
	}
	for _, p := range f.places {
		if p.ID == nr.PlaceID && p.OwnerID == u.id {
			reply(w, http.StatusBadRequest, map[string]string{"error": "You cannot review your own place"})
			return
		}
	}
	if nr.Text == "boom" {
		reply(w, http.StatusInternalServerError, map[string]string{"error": "database unavailable"})
		return
	}

	rev := model.Review{ID: "new", PlaceID: nr.PlaceID, UserID: u.id, Rating: nr.Rating, Text: nr.Text}
	f.mu.Lock()
	f.reviews[nr.PlaceID] = append(f.reviews[nr.PlaceID], rev)
	f.mu.Unlock()
	reply(w, http.StatusCreated, rev)
}

func (f *fakeAPI) protected(w http.ResponseWriter, r *http.Request) {
	f.hit("protected")
	u, ok := f.userFor(r)
	if !ok {
		reply(w, http.StatusUnauthorized, map[string]string{"msg": "Missing Authorization Header"})
		return
	}
	reply(w, http.StatusOK, map[string]string{"message": "Hello, user " + u.id})
}
