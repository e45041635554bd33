package catalog

import "time"

// Album is a priced, dated work owned by exactly one artist. ArtistName is
// read from the owning artist and is never stored on the album itself.
type Album struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	ReleaseDate Date      `json:"release_date" db:"release_date"`
	Price       float64   `json:"price" db:"price"`
	ArtistID    string    `json:"artist_id" db:"artist_id"`
	ArtistName  string    `json:"artist_name" db:"artist_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateAlbumRequest struct {
	Name        string  `json:"name"`
	ReleaseDate Date    `json:"release_date"`
	Price       float64 `json:"price"`
	ArtistName  string  `json:"artist_name"`
}
