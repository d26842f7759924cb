package site

import (
	"context"

	"github.com/ghaggin/hbnb/internal/api"
	"github.com/ghaggin/hbnb/internal/middleware"
	"github.com/ghaggin/hbnb/internal/model"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Controller holds the page logic that sits between the handlers and the
// API: which calls to make, and what to remember in the session.
type Controller struct {
	api      *api.Client
	sessions *middleware.SessionManager
	log      *zap.Logger
}

type ControllerParams struct {
	fx.In

	Logger   *zap.Logger
	API      *api.Client
	Sessions *middleware.SessionManager
}

func NewController(p ControllerParams) (*Controller, error) {
	return &Controller{
		log:      p.Logger,
		api:      p.API,
		sessions: p.Sessions,
	}, nil
}

// Listings returns the listing set for the index. With refresh it always
// fetches and re-caches; otherwise a cached set is reused.
func (c *Controller) Listings(ctx context.Context, refresh bool) ([]model.Listing, error) {
	if !refresh {
		if cached, ok := c.sessions.CachedListings(ctx); ok {
			return cached, nil
		}
	}

	listings, err := c.api.ListPlaces(ctx, c.sessions.Token(ctx))
	if err != nil {
		return nil, err
	}
	c.sessions.CacheListings(ctx, listings)
	return listings, nil
}

// CachedPlace looks a place up in the cached listing set without calling
// the API.
func (c *Controller) CachedPlace(ctx context.Context, id string) *model.Listing {
	cached, _ := c.sessions.CachedListings(ctx)
	for i := range cached {
		if cached[i].ID == id {
			return &cached[i]
		}
	}
	return nil
}

// Place loads a place then its reviews. A nil place means the place itself
// could not be loaded; a non-nil place with an error means only the
// reviews failed.
func (c *Controller) Place(ctx context.Context, id string) (*model.Listing, []model.Review, error) {
	token := c.sessions.Token(ctx)

	place, err := c.api.GetPlace(ctx, token, id)
	if err != nil {
		return nil, nil, err
	}

	reviews, err := c.api.ListPlaceReviews(ctx, token, id)
	if err != nil {
		return place, nil, err
	}
	return place, reviews, nil
}

// Login trades credentials for a token and keeps it in the session. The
// user id is recovered best effort; a failure there does not fail the login.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	token, err := c.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := c.sessions.SetToken(ctx, token); err != nil {
		return err
	}

	id, err := c.api.CurrentUserID(ctx, token)
	if err != nil {
		c.log.Warn("could not recover user id after login", zap.Error(err))
		return nil
	}
	c.sessions.SetUserID(ctx, id)
	return nil
}

func (c *Controller) SubmitReview(ctx context.Context, review model.NewReview) error {
	if err := review.Validate(); err != nil {
		return err
	}
	_, err := c.api.SubmitReview(ctx, c.sessions.Token(ctx), review)
	return err
}

func (c *Controller) Logout(ctx context.Context) error {
	return c.sessions.Clear(ctx)
}
