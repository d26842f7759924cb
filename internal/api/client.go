package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/ghaggin/hbnb/internal/config"
	"github.com/ghaggin/hbnb/internal/model"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var greeting = regexp.MustCompile(`Hello, user (.+)`)

// Client wraps the HBnB REST API. Every call is a single attempt.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type Params struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
}

func New(p Params) (*Client, error) {
	return NewClient(p.Config.API.BaseURL, &http.Client{Timeout: p.Config.API.Timeout}, p.Log), nil
}

func NewClient(baseURL string, hc *http.Client, log *zap.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out model.AccessToken
	err := c.do(ctx, http.MethodPost, "/auth/login", "", model.Credentials{Email: email, Password: password}, &out)
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", &Error{Status: http.StatusOK, Message: "no access token in response"}
	}
	return out.AccessToken, nil
}

func (c *Client) ListPlaces(ctx context.Context, token string) ([]model.Listing, error) {
	var out []model.Listing
	if err := c.do(ctx, http.MethodGet, "/places/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPlace(ctx context.Context, token, id string) (*model.Listing, error) {
	var out model.Listing
	if err := c.do(ctx, http.MethodGet, "/places/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPlaceReviews(ctx context.Context, token, id string) ([]model.Review, error) {
	var out []model.Review
	if err := c.do(ctx, http.MethodGet, "/places/"+url.PathEscape(id)+"/reviews", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitReview(ctx context.Context, token string, review model.NewReview) (*model.Review, error) {
	var out model.Review
	if err := c.do(ctx, http.MethodPost, "/reviews/", token, review, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUserID recovers the user id from the greeting returned by the
// protected endpoint. An unrecognised greeting yields "".
func (c *Client) CurrentUserID(ctx context.Context, token string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, "/protected/", token, nil, &out); err != nil {
		return "", err
	}
	m := greeting.FindStringSubmatch(out.Message)
	if m == nil {
		return "", nil
	}
	return strings.TrimSpace(m[1]), nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.log.Info("api returned error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Msg != "":
			apiErr.Message = body.Msg
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return apiErr
}
