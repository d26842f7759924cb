package model

type FlashLevel string

const (
	FlashInfo    FlashLevel = "info"
	FlashSuccess FlashLevel = "success"
	FlashWarning FlashLevel = "warning"
	FlashError   FlashLevel = "error"
)

type Flash struct {
	Level   FlashLevel
	Message string
}

// Session is the per-browser state kept server side. An empty Token means
// the visitor is anonymous.
type Session struct {
	Token              string
	UserID             string
	RedirectAfterLogin string
	Flashes            []Flash

	// Last fetched listing set, reused by the price filter.
	Listings       []Listing
	ListingsCached bool
}
