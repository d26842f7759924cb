package site

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/ghaggin/hbnb/internal/api"
	"github.com/ghaggin/hbnb/internal/middleware"
	"github.com/ghaggin/hbnb/internal/model"
	"github.com/ghaggin/hbnb/internal/template"
	"github.com/ghaggin/hbnb/internal/view"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgFillAllFields   = "Please fill all fields"
	msgOwnPlace        = "You cannot review your own place."
	msgReviewSubmitted = "Review submitted successfully!"
	msgLoginOK         = "Login successful!"
	msgLoggedOut       = "You have been logged out."
	msgLoginRequired   = "Email and password are required"
	msgTooManyLogins   = "Too many login attempts, please try again later."
)

type handlers struct {
	log      *zap.Logger
	sessions *middleware.SessionManager
	ctl      *Controller
	renderer *template.Renderer
	limiter  *loginLimiter
}

func (h *handlers) layout(r *http.Request, title string) view.Layout {
	return view.Layout{
		Title:    title,
		LoggedIn: middleware.ViewerFrom(r.Context()).Authenticated,
		Flashes:  h.sessions.PopFlashes(r.Context()),
	}
}

func (h *handlers) render(w http.ResponseWriter, r *http.Request, status int, tmpl string, td any) {
	err := h.renderer.Render(w, status, tmpl, td)
	if err != nil {
		h.log.Error("failed rendering template",
			zap.String("template", tmpl),
			zap.String("request_id", middleware.RequestIDFrom(r.Context())),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *handlers) flashError(r *http.Request, msg string) {
	h.sessions.Flash(r.Context(), model.FlashError, msg)
}

// index fetches and caches the listing set. A price filter re-renders from
// the cached set.
func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	price := r.URL.Query().Get("price")

	listings, err := h.ctl.Listings(r.Context(), price == "")
	if err != nil {
		h.flashError(r, "Failed to load places: "+api.Message(err))
	}

	limit, filtered, err := view.ParseThreshold(price)
	if err != nil {
		h.flashError(r, "Unknown price filter: "+price)
		price = view.AllPrices
	}
	if filtered {
		listings = view.FilterByPrice(listings, limit)
	}

	h.render(w, r, http.StatusOK, "index.html", &view.IndexPage{
		Layout:       h.layout(r, "Places"),
		Cards:        view.Cards(listings),
		PriceOptions: view.PriceOptions(price),
	})
}

// loadPlace fetches a place and its reviews. When the place itself fails it
// renders the error page and returns nil.
func (h *handlers) loadPlace(w http.ResponseWriter, r *http.Request) (*model.Listing, []model.Review) {
	place, reviews, err := h.ctl.Place(r.Context(), chi.URLParam(r, "id"))
	if place == nil {
		h.flashError(r, "Failed to load place: "+api.Message(err))
		h.render(w, r, placeErrorStatus(err), "place.html", &view.PlacePage{
			Layout: h.layout(r, "Place not found"),
		})
		return nil, nil
	}
	if err != nil {
		h.flashError(r, "Failed to load reviews: "+api.Message(err))
	}
	return place, reviews
}

func (h *handlers) place(w http.ResponseWriter, r *http.Request) {
	place, reviews := h.loadPlace(w, r)
	if place == nil {
		return
	}
	viewer := middleware.ViewerFrom(r.Context())

	h.render(w, r, http.StatusOK, "place.html", &view.PlacePage{
		Layout:  h.layout(r, place.DisplayTitle()),
		Place:   view.Detail(place),
		Reviews: view.Reviews(reviews),
		Action:  view.ActionFor(viewer.Authenticated, viewer.UserID, place),
	})
}

func (h *handlers) newReview(w http.ResponseWriter, r *http.Request) {
	place, reviews := h.loadPlace(w, r)
	if place == nil {
		return
	}
	viewer := middleware.ViewerFrom(r.Context())

	h.render(w, r, http.StatusOK, "add_review.html", &view.ReviewPage{
		Layout:      h.layout(r, "Review "+place.DisplayTitle()),
		PlaceID:     place.ID,
		Place:       view.Detail(place),
		ShowPlace:   true,
		Reviews:     view.Reviews(reviews),
		ShowReviews: true,
		Ratings:     view.Ratings(),
		IsOwner:     view.ActionFor(viewer.Authenticated, viewer.UserID, place) == view.ReviewHidden,
	})
}

func (h *handlers) createReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseForm(); err != nil {
		h.reviewFormError(w, r, id, view.ReviewForm{Error: "Invalid form submission"}, http.StatusBadRequest)
		return
	}

	// An unparsable rating stays 0 and fails validation.
	rating, _ := strconv.Atoi(r.FormValue("rating"))
	review := model.NewReview{
		PlaceID: id,
		Rating:  rating,
		Text:    strings.TrimSpace(r.FormValue("review")),
	}
	form := view.ReviewForm{Rating: review.Rating, Text: review.Text}

	err := h.ctl.SubmitReview(r.Context(), review)
	switch {
	case err == nil:
		h.sessions.Flash(r.Context(), model.FlashSuccess, msgReviewSubmitted)
		http.Redirect(w, r, view.PlaceURL(id), http.StatusSeeOther)
	case errors.Is(err, model.ErrInvalidReview):
		form.Error = msgFillAllFields
		h.reviewFormError(w, r, id, form, http.StatusUnprocessableEntity)
	case api.IsOwnPlace(err):
		form.Error = msgOwnPlace
		h.reviewFormError(w, r, id, form, http.StatusForbidden)
	default:
		h.log.Info("review submission failed", zap.String("place_id", id), zap.Error(err))
		form.Error = "Error adding review: " + api.Message(err)
		h.reviewFormError(w, r, id, form, http.StatusBadGateway)
	}
}

// reviewFormError re-renders the review form without calling the API. The
// place panel comes from the cached listing set when it is there; reviews
// were not fetched, so their panel is left out.
func (h *handlers) reviewFormError(w http.ResponseWriter, r *http.Request, id string, form view.ReviewForm, status int) {
	page := &view.ReviewPage{
		PlaceID: id,
		Form:    form,
		Ratings: view.Ratings(),
	}
	title := "Add review"
	if place := h.ctl.CachedPlace(r.Context(), id); place != nil {
		page.Place = view.Detail(place)
		page.ShowPlace = true
		title = "Review " + place.DisplayTitle()
	}
	page.Layout = h.layout(r, title)

	h.render(w, r, status, "add_review.html", page)
}

// loginToReview remembers the place so login returns to it.
func (h *handlers) loginToReview(w http.ResponseWriter, r *http.Request) {
	h.sessions.SetRedirect(r.Context(), view.PlaceURL(chi.URLParam(r, "id")))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *handlers) loginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.ViewerFrom(r.Context()).Authenticated {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "login.html", &view.LoginPage{
		Layout: h.layout(r, "Login"),
	})
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.loginError(w, r, "", "Invalid form submission", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		email = strings.TrimSpace(r.FormValue("username"))
	}
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.loginError(w, r, email, msgLoginRequired, http.StatusBadRequest)
		return
	}

	if !h.limiter.Allow(clientIP(r)) {
		h.loginError(w, r, email, msgTooManyLogins, http.StatusTooManyRequests)
		return
	}

	if err := h.ctl.Login(r.Context(), email, password); err != nil {
		h.loginError(w, r, email, "Login failed: "+api.Message(err), http.StatusUnauthorized)
		return
	}

	h.sessions.Flash(r.Context(), model.FlashSuccess, msgLoginOK)
	http.Redirect(w, r, h.sessions.PopRedirect(r.Context(), "/"), http.StatusSeeOther)
}

func (h *handlers) loginError(w http.ResponseWriter, r *http.Request, email, msg string, status int) {
	h.render(w, r, status, "login.html", &view.LoginPage{
		Layout: h.layout(r, "Login"),
		Email:  email,
		Error:  msg,
	})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.ctl.Logout(r.Context()); err != nil {
		h.log.Error("failed clearing session", zap.Error(err))
	}
	h.sessions.Flash(r.Context(), model.FlashInfo, msgLoggedOut)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func placeErrorStatus(err error) int {
	if api.Status(err) == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
