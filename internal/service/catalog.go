package service

import (
	"context"

	"music-catalog/internal"
	cl "music-catalog/pkg/catalog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
)

var newID = uuid.NewString

// Catalog implements the catalog operations on top of a Store. Each method
// runs inside exactly one storage session.
type Catalog struct {
	Store  internal.Store
	Logger tools.Logger
}

var _ internal.Catalog = (*Catalog)(nil)

// ListArtists returns every artist in insertion order.
func (c *Catalog) ListArtists(ctx context.Context) ([]cl.Artist, error) {
	var res []cl.Artist
	err := c.Store.Do(ctx, "list_artists", func(ctx context.Context, s internal.Session) error {
		var err error
		res, err = s.ListArtists(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "list artists")
	}
	if res == nil {
		res = []cl.Artist{}
	}
	return res, nil
}

// CreateArtist stores a new artist. A name that is already taken is rejected
// by the store's uniqueness constraint and surfaces as cl.ErrConflict.
func (c *Catalog) CreateArtist(ctx context.Context, req cl.CreateArtistRequest) (cl.Artist, error) {
	var res cl.Artist
	err := c.Store.Do(ctx, "create_artist", func(ctx context.Context, s internal.Session) error {
		var err error
		res, err = s.CreateArtist(ctx, cl.Artist{
			ID:   newID(),
			Name: req.Name,
		})
		return err
	})
	if err != nil {
		return cl.Artist{}, errors.Wrapf(err, "create artist (%s)", req.Name)
	}

	c.Logger.Info("artist created",
		"artist_id", res.ID,
		"name", res.Name,
	)
	return res, nil
}

// DeleteArtist removes the artist and, with it, every album it owns.
func (c *Catalog) DeleteArtist(ctx context.Context, id string) error {
	// Ids are UUIDs; anything else cannot name an artist.
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrapf(cl.ErrNotFound, "artist (%s)", id)
	}

	err := c.Store.Do(ctx, "delete_artist", func(ctx context.Context, s internal.Session) error {
		return s.DeleteArtist(ctx, id)
	})
	if err != nil {
		return errors.Wrapf(err, "artist (%s)", id)
	}

	c.Logger.Info("artist deleted",
		"artist_id", id,
	)
	return nil
}

// CreateAlbum resolves the owning artist by name and stores the album
// against that artist's id.
func (c *Catalog) CreateAlbum(ctx context.Context, req cl.CreateAlbumRequest) (cl.Album, error) {
	var res cl.Album
	err := c.Store.Do(ctx, "create_album", func(ctx context.Context, s internal.Session) error {
		artist, err := s.GetArtistByName(ctx, req.ArtistName)
		if err != nil {
			return errors.Wrapf(err, "artist with name (%s)", req.ArtistName)
		}

		res, err = s.CreateAlbum(ctx, cl.Album{
			ID:          newID(),
			Name:        req.Name,
			ReleaseDate: req.ReleaseDate,
			Price:       req.Price,
			ArtistID:    artist.ID,
			ArtistName:  artist.Name,
		})
		return err
	})
	if err != nil {
		return cl.Album{}, errors.Wrap(err, "create album")
	}

	c.Logger.Info("album created",
		"album_id", res.ID,
		"artist_id", res.ArtistID,
	)
	return res, nil
}

// ListAlbumsForArtist returns the named artist's albums that satisfy every
// bound set on f. f.ArtistID is ignored and replaced by the resolved artist.
func (c *Catalog) ListAlbumsForArtist(ctx context.Context, artistName string, f cl.AlbumFilter) ([]cl.Album, error) {
	var res []cl.Album
	err := c.Store.Do(ctx, "list_albums_for_artist", func(ctx context.Context, s internal.Session) error {
		artist, err := s.GetArtistByName(ctx, artistName)
		if err != nil {
			return errors.Wrapf(err, "artist with name (%s)", artistName)
		}

		f.ArtistID = artist.ID
		res, err = s.ListAlbums(ctx, f)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "list albums")
	}
	if res == nil {
		res = []cl.Album{}
	}
	return res, nil
}
