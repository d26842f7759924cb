package view

import (
	"errors"
	"math"
	"strconv"

	"github.com/ghaggin/hbnb/internal/model"
)

const AllPrices = "All"

// PriceThresholds are the choices offered by the price filter.
var PriceThresholds = []string{AllPrices, "10", "50", "100"}

var (
	ErrInvalidPrice = errors.New("invalid price filter")
)

type PriceOption struct {
	Value    string
	Selected bool
}

// ParseThreshold reads a filter value. ok is false for "All" or empty.
func ParseThreshold(s string) (limit float64, ok bool, err error) {
	if s == "" || s == AllPrices {
		return 0, false, nil
	}
	limit, err = strconv.ParseFloat(s, 64)
	if err != nil || limit < 0 || math.IsNaN(limit) || math.IsInf(limit, 0) {
		return 0, false, ErrInvalidPrice
	}
	return limit, true, nil
}

// FilterByPrice keeps the listings priced at or below limit, in order.
func FilterByPrice(listings []model.Listing, limit float64) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Price <= limit {
			out = append(out, l)
		}
	}
	return out
}

func PriceOptions(selected string) []PriceOption {
	if selected == "" {
		selected = AllPrices
	}
	opts := make([]PriceOption, 0, len(PriceThresholds))
	for _, v := range PriceThresholds {
		opts = append(opts, PriceOption{Value: v, Selected: v == selected})
	}
	return opts
}
