// Package memory provides an in-process catalog store. It enforces the same
// constraints as the Postgres schema: unique artist names, albums that must
// reference an existing artist, and cascading artist deletes.
package memory

import (
	"context"
	"sort"
	"sync"

	"music-catalog/internal"
	cl "music-catalog/pkg/catalog"

	"github.com/twitsprout/tools/clock"
)

// Memory is a Store whose sessions run one at a time.
type Memory struct {
	clock clock.Clock

	mu      sync.Mutex
	artists []cl.Artist
	albums  []cl.Album
}

var _ internal.Store = (*Memory)(nil)

// New returns an empty Memory store. A nil clock uses the wall clock.
func New(c clock.Clock) *Memory {
	if c == nil {
		c = &clock.Default{}
	}
	return &Memory{clock: c}
}

// Do runs fn against a copy of the current state. The copy replaces the
// state only when fn returns nil.
func (m *Memory) Do(ctx context.Context, label string, fn func(context.Context, internal.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := &session{
		clock:   m.clock,
		artists: append([]cl.Artist(nil), m.artists...),
		albums:  append([]cl.Album(nil), m.albums...),
	}
	if err := fn(ctx, s); err != nil {
		return err
	}
	m.artists = s.artists
	m.albums = s.albums
	return nil
}

type session struct {
	clock   clock.Clock
	artists []cl.Artist
	albums  []cl.Album
}

func (s *session) ListArtists(ctx context.Context) ([]cl.Artist, error) {
	return append([]cl.Artist{}, s.artists...), nil
}

func (s *session) GetArtistByName(ctx context.Context, name string) (cl.Artist, error) {
	for _, a := range s.artists {
		if a.Name == name {
			return a, nil
		}
	}
	return cl.Artist{}, cl.ErrNotFound
}

func (s *session) CreateArtist(ctx context.Context, a cl.Artist) (cl.Artist, error) {
	for _, existing := range s.artists {
		if existing.Name == a.Name {
			return cl.Artist{}, cl.ErrConflict
		}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.clock.Now()
	}
	s.artists = append(s.artists, a)
	return a, nil
}

func (s *session) DeleteArtist(ctx context.Context, id string) error {
	idx := -1
	for i, a := range s.artists {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return cl.ErrNotFound
	}
	s.artists = append(s.artists[:idx:idx], s.artists[idx+1:]...)

	albums := s.albums[:0:0]
	for _, a := range s.albums {
		if a.ArtistID != id {
			albums = append(albums, a)
		}
	}
	s.albums = albums
	return nil
}

func (s *session) CreateAlbum(ctx context.Context, a cl.Album) (cl.Album, error) {
	artist, ok := s.artistByID(a.ArtistID)
	if !ok {
		return cl.Album{}, cl.ErrNotFound
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.clock.Now()
	}
	a.ArtistName = ""
	s.albums = append(s.albums, a)

	a.ArtistName = artist.Name
	return a, nil
}

func (s *session) ListAlbums(ctx context.Context, f cl.AlbumFilter) ([]cl.Album, error) {
	res := []cl.Album{}
	for _, a := range s.albums {
		if !f.Match(a) {
			continue
		}
		if artist, ok := s.artistByID(a.ArtistID); ok {
			a.ArtistName = artist.Name
		}
		res = append(res, a)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return albumLess(res[i], res[j])
	})
	return res, nil
}

func (s *session) artistByID(id string) (cl.Artist, bool) {
	for _, a := range s.artists {
		if a.ID == id {
			return a, true
		}
	}
	return cl.Artist{}, false
}

// albumLess orders albums the same way the Postgres store does.
func albumLess(a, b cl.Album) bool {
	if !a.ReleaseDate.Equal(b.ReleaseDate.Time) {
		return a.ReleaseDate.Before(b.ReleaseDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}
