package mock

import (
	"context"

	"music-catalog/internal"
	cl "music-catalog/pkg/catalog"
)

var _ internal.Catalog = (*Catalog)(nil)

// Catalog implements internal.Catalog with injected functions.
type Catalog struct {
	ListArtistsFn         func(ctx context.Context) ([]cl.Artist, error)
	CreateArtistFn        func(ctx context.Context, req cl.CreateArtistRequest) (cl.Artist, error)
	DeleteArtistFn        func(ctx context.Context, id string) error
	CreateAlbumFn         func(ctx context.Context, req cl.CreateAlbumRequest) (cl.Album, error)
	ListAlbumsForArtistFn func(ctx context.Context, artistName string, f cl.AlbumFilter) ([]cl.Album, error)
}

// ListArtists proxies the request to the ListArtistsFn that's injected when
// the mock catalog is created.
func (c *Catalog) ListArtists(ctx context.Context) ([]cl.Artist, error) {
	return c.ListArtistsFn(ctx)
}

// CreateArtist proxies the request to the CreateArtistFn that's injected when
// the mock catalog is created.
func (c *Catalog) CreateArtist(ctx context.Context, req cl.CreateArtistRequest) (cl.Artist, error) {
	return c.CreateArtistFn(ctx, req)
}

// DeleteArtist proxies the request to the DeleteArtistFn that's injected when
// the mock catalog is created.
func (c *Catalog) DeleteArtist(ctx context.Context, id string) error {
	return c.DeleteArtistFn(ctx, id)
}

// CreateAlbum proxies the request to the CreateAlbumFn that's injected when
// the mock catalog is created.
func (c *Catalog) CreateAlbum(ctx context.Context, req cl.CreateAlbumRequest) (cl.Album, error) {
	return c.CreateAlbumFn(ctx, req)
}

// ListAlbumsForArtist proxies the request to the ListAlbumsForArtistFn that's
// injected when the mock catalog is created.
func (c *Catalog) ListAlbumsForArtist(ctx context.Context, artistName string, f cl.AlbumFilter) ([]cl.Album, error) {
	return c.ListAlbumsForArtistFn(ctx, artistName, f)
}
