package catalog

import "gopkg.in/guregu/null.v3"

// AlbumFilter selects one artist's albums. Every bound is optional and
// inclusive; bounds that are set are combined conjunctively. Bounds are not
// checked against each other, so a minimum above its maximum matches nothing.
type AlbumFilter struct {
	ArtistID string

	MinPrice null.Float
	MaxPrice null.Float
	MinDate  null.Time
	MaxDate  null.Time
}

// Match reports whether a satisfies every bound set on f.
func (f AlbumFilter) Match(a Album) bool {
	if f.ArtistID != "" && a.ArtistID != f.ArtistID {
		return false
	}
	if f.MinPrice.Valid && a.Price < f.MinPrice.Float64 {
		return false
	}
	if f.MaxPrice.Valid && a.Price > f.MaxPrice.Float64 {
		return false
	}
	if f.MinDate.Valid && a.ReleaseDate.Before(DateOf(f.MinDate.Time)) {
		return false
	}
	if f.MaxDate.Valid && a.ReleaseDate.After(DateOf(f.MaxDate.Time)) {
		return false
	}
	return true
}
