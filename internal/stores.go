package internal

import (
	"context"

	cl "music-catalog/pkg/catalog"
)

// Store hands out storage sessions. Do runs fn with a session that is
// committed when fn returns nil and rolled back otherwise; the session must
// not be retained after fn returns.
type Store interface {
	Do(ctx context.Context, label string, fn func(ctx context.Context, s Session) error) error
}

// Session is a single all-or-nothing unit of work against the catalog
// tables.
type Session interface {
	ListArtists(ctx context.Context) ([]cl.Artist, error)
	GetArtistByName(ctx context.Context, name string) (cl.Artist, error)
	CreateArtist(ctx context.Context, a cl.Artist) (cl.Artist, error)
	DeleteArtist(ctx context.Context, id string) error
	CreateAlbum(ctx context.Context, a cl.Album) (cl.Album, error)
	ListAlbums(ctx context.Context, f cl.AlbumFilter) ([]cl.Album, error)
}

// Catalog is the set of operations exposed over HTTP.
type Catalog interface {
	ListArtists(ctx context.Context) ([]cl.Artist, error)
	CreateArtist(ctx context.Context, req cl.CreateArtistRequest) (cl.Artist, error)
	DeleteArtist(ctx context.Context, id string) error
	CreateAlbum(ctx context.Context, req cl.CreateAlbumRequest) (cl.Album, error)
	ListAlbumsForArtist(ctx context.Context, artistName string, f cl.AlbumFilter) ([]cl.Album, error)
}
