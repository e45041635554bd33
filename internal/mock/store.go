package mock

import (
	"context"

	"music-catalog/internal"
	cl "music-catalog/pkg/catalog"
)

var _ internal.Store = (*Store)(nil)
var _ internal.Session = (*Session)(nil)

// Store runs every Do call against Session. DoErr, when set, is returned
// instead of invoking fn, as if the session could not be acquired.
type Store struct {
	Session *Session
	DoErr   error

	Labels []string
}

// Do records label and invokes fn with the injected Session.
func (s *Store) Do(ctx context.Context, label string, fn func(context.Context, internal.Session) error) error {
	s.Labels = append(s.Labels, label)
	if s.DoErr != nil {
		return s.DoErr
	}
	return fn(ctx, s.Session)
}

// Session implements internal.Session with injected functions.
type Session struct {
	ListArtistsFn     func(ctx context.Context) ([]cl.Artist, error)
	GetArtistByNameFn func(ctx context.Context, name string) (cl.Artist, error)
	CreateArtistFn    func(ctx context.Context, a cl.Artist) (cl.Artist, error)
	DeleteArtistFn    func(ctx context.Context, id string) error
	CreateAlbumFn     func(ctx context.Context, a cl.Album) (cl.Album, error)
	ListAlbumsFn      func(ctx context.Context, f cl.AlbumFilter) ([]cl.Album, error)
}

func (s *Session) ListArtists(ctx context.Context) ([]cl.Artist, error) {
	return s.ListArtistsFn(ctx)
}

func (s *Session) GetArtistByName(ctx context.Context, name string) (cl.Artist, error) {
	return s.GetArtistByNameFn(ctx, name)
}

func (s *Session) CreateArtist(ctx context.Context, a cl.Artist) (cl.Artist, error) {
	return s.CreateArtistFn(ctx, a)
}

func (s *Session) DeleteArtist(ctx context.Context, id string) error {
	return s.DeleteArtistFn(ctx, id)
}

func (s *Session) CreateAlbum(ctx context.Context, a cl.Album) (cl.Album, error) {
	return s.CreateAlbumFn(ctx, a)
}

func (s *Session) ListAlbums(ctx context.Context, f cl.AlbumFilter) ([]cl.Album, error) {
	return s.ListAlbumsFn(ctx, f)
}
