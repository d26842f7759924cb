package model

type Amenity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	Name        string    `json:"name,omitempty"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Latitude    float64   `json:"latitude,omitempty"`
	Longitude   float64   `json:"longitude,omitempty"`
	OwnerID     string    `json:"owner_id,omitempty"`
	Owner       *User     `json:"owner,omitempty"`
	Amenities   []Amenity `json:"amenities,omitempty"`
}

// DisplayTitle falls back to Name for places created before titles existed.
func (l *Listing) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return l.Name
}

// HostID returns the owner id from either the flat or the nested field.
func (l *Listing) HostID() string {
	if l.OwnerID != "" {
		return l.OwnerID
	}
	if l.Owner != nil {
		return l.Owner.ID
	}
	return ""
}
