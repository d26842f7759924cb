package model

import (
	"errors"
	"strings"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	ErrInvalidReview = errors.New("invalid review")
)

type Review struct {
	ID       string `json:"id,omitempty"`
	PlaceID  string `json:"place_id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
}

type NewReview struct {
	PlaceID string `json:"place_id"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
}

func (r *NewReview) Validate() error {
	if r.PlaceID == "" {
		return errors.Join(ErrInvalidReview, errors.New("missing place"))
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return errors.Join(ErrInvalidReview, errors.New("rating must be between 1 and 5"))
	}
	if strings.TrimSpace(r.Text) == "" {
		return errors.Join(ErrInvalidReview, errors.New("text is empty"))
	}
	return nil
}
