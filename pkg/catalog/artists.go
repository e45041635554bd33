package catalog

import "time"

type Artist struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateArtistRequest struct {
	Name string `json:"name"`
}

type DeleteArtistRes struct {
	ID string `json:"id"`
}
