// Package view maps API payloads onto the typed models the templates render.
package view

import (
	"strconv"
	"strings"

	"github.com/ghaggin/hbnb/internal/model"
)

const (
	unknownHost   = "Unknown Host"
	noDescription = "No description"
	noAmenities   = "None"
	anonymous     = "Anonymous"
)

type Layout struct {
	Title    string
	LoggedIn bool
	Flashes  []model.Flash
}

type ListingCard struct {
	ID          string
	Title       string
	Price       string
	Description string
	ImageURL    string
	DetailURL   string
}

type ListingDetail struct {
	ID          string
	Title       string
	Host        string
	Price       string
	Description string
	Amenities   string
	ImageURL    string
}

type ReviewCard struct {
	Author string
	Text   string
	Rating int
	Stars  string
}

// ReviewAction is the add-review affordance shown on a place page.
type ReviewAction int

const (
	ReviewHidden ReviewAction = iota
	ReviewLogin
	ReviewAdd
)

type IndexPage struct {
	Layout
	Cards        []ListingCard
	PriceOptions []PriceOption
}

type PlacePage struct {
	Layout
	Place   ListingDetail
	Reviews []ReviewCard
	Action  ReviewAction
}

type ReviewForm struct {
	Rating int
	Text   string
	Error  string
}

type ReviewPage struct {
	Layout
	PlaceID string
	// Place and Reviews are only drawn when they were actually loaded.
	Place       ListingDetail
	ShowPlace   bool
	Reviews     []ReviewCard
	ShowReviews bool
	Form        ReviewForm
	Ratings     []int
	IsOwner     bool
}

type LoginPage struct {
	Layout
	Email string
	Error string
}

func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func Cards(listings []model.Listing) []ListingCard {
	cards := make([]ListingCard, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		cards = append(cards, ListingCard{
			ID:          l.ID,
			Title:       l.DisplayTitle(),
			Price:       FormatPrice(l.Price),
			Description: l.Description,
			ImageURL:    l.ImageURL,
			DetailURL:   PlaceURL(l.ID),
		})
	}
	return cards
}

func Detail(l *model.Listing) ListingDetail {
	if l == nil {
		return ListingDetail{}
	}

	host := unknownHost
	if l.Owner != nil && l.Owner.FullName() != "" {
		host = l.Owner.FullName()
	}

	description := l.Description
	if description == "" {
		description = noDescription
	}

	names := make([]string, 0, len(l.Amenities))
	for _, a := range l.Amenities {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	amenities := noAmenities
	if len(names) > 0 {
		amenities = strings.Join(names, ", ")
	}

	return ListingDetail{
		ID:          l.ID,
		Title:       l.DisplayTitle(),
		Host:        host,
		Price:       FormatPrice(l.Price),
		Description: description,
		Amenities:   amenities,
		ImageURL:    l.ImageURL,
	}
}

func Reviews(reviews []model.Review) []ReviewCard {
	cards := make([]ReviewCard, 0, len(reviews))
	for _, r := range reviews {
		author := r.UserName
		if author == "" {
			author = anonymous
		}
		rating := clampRating(r.Rating)
		cards = append(cards, ReviewCard{
			Author: author,
			Text:   r.Text,
			Rating: rating,
			Stars:  Stars(rating),
		})
	}
	return cards
}

// Stars draws a rating out of five.
func Stars(rating int) string {
	rating = clampRating(rating)
	return strings.Repeat("★", rating) + strings.Repeat("☆", model.MaxRating-rating)
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > model.MaxRating {
		return model.MaxRating
	}
	return r
}

// ActionFor decides which add-review affordance the viewer gets.
// Owners cannot review their own place.
func ActionFor(loggedIn bool, userID string, l *model.Listing) ReviewAction {
	if !loggedIn {
		return ReviewLogin
	}
	if l != nil && userID != "" && userID == l.HostID() {
		return ReviewHidden
	}
	return ReviewAdd
}

func Ratings() []int {
	r := make([]int, 0, model.MaxRating)
	for i := model.MinRating; i <= model.MaxRating; i++ {
		r = append(r, i)
	}
	return r
}

func PlaceURL(id string) string {
	return "/places/" + id
}
