package service

import (
	"context"
	"testing"
	"time"

	"music-catalog/internal/memory"
	"music-catalog/internal/mock"
	cl "music-catalog/pkg/catalog"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	tm "github.com/twitsprout/tools/mock"
	"gopkg.in/guregu/null.v3"
)

func newCatalog() *Catalog {
	return &Catalog{
		Store:  memory.New(nil),
		Logger: tm.NopLogger,
	}
}

func createTestArtist(t *testing.T, c *Catalog, name string) cl.Artist {
	t.Helper()
	a, err := c.CreateArtist(context.Background(), cl.CreateArtistRequest{Name: name})
	require.NoError(t, err)
	return a
}

func createTestAlbum(t *testing.T, c *Catalog, artistName string, price float64, date cl.Date) cl.Album {
	t.Helper()
	a, err := c.CreateAlbum(context.Background(), cl.CreateAlbumRequest{
		Name:        "ep 1",
		ReleaseDate: date,
		Price:       price,
		ArtistName:  artistName,
	})
	require.NoError(t, err)
	return a
}

func TestCreateArtistConflict(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	first := createTestArtist(t, c, "test-artist")
	require.NotEmpty(t, first.ID)
	require.Equal(t, "test-artist", first.Name)

	_, err := c.CreateArtist(ctx, cl.CreateArtistRequest{Name: "test-artist"})
	require.Equal(t, cl.ErrConflict, errors.Cause(err))
	require.Contains(t, err.Error(), "test-artist")

	artists, err := c.ListArtists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, 1)
}

func TestListArtists(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()

	empty, err := c.ListArtists(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	names := []string{"first", "second", "third"}
	ids := map[string]string{}
	for _, n := range names {
		a := createTestArtist(t, c, n)
		ids[a.ID] = n
	}
	require.Len(t, ids, len(names))

	artists, err := c.ListArtists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, len(names))
	for i, a := range artists {
		require.Equal(t, names[i], a.Name)
		require.Equal(t, ids[a.ID], a.Name)
	}

	again, err := c.ListArtists(ctx)
	require.NoError(t, err)
	require.Equal(t, artists, again)

	for id := range ids {
		require.NoError(t, c.DeleteArtist(ctx, id))
	}
	artists, err = c.ListArtists(ctx)
	require.NoError(t, err)
	require.Empty(t, artists)
}

func TestDeleteArtist(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail for an unknown id without mutating", func(t *testing.T) {
		c := newCatalog()
		createTestArtist(t, c, "test-artist")

		err := c.DeleteArtist(ctx, newID())
		require.Equal(t, cl.ErrNotFound, errors.Cause(err))

		artists, err := c.ListArtists(ctx)
		require.NoError(t, err)
		require.Len(t, artists, 1)
	})

	t.Run("should fail for an id that is not a uuid", func(t *testing.T) {
		s := &mock.Store{}
		c := &Catalog{Store: s, Logger: tm.NopLogger}

		err := c.DeleteArtist(ctx, "42")
		require.Equal(t, cl.ErrNotFound, errors.Cause(err))
		require.Empty(t, s.Labels)
	})

	t.Run("should cascade to the artist's albums", func(t *testing.T) {
		c := newCatalog()
		a := createTestArtist(t, c, "test-artist")
		createTestAlbum(t, c, "test-artist", 10, cl.NewDate(2024, time.January, 20))
		require.NoError(t, c.DeleteArtist(ctx, a.ID))

		_, err := c.ListAlbumsForArtist(ctx, "test-artist", cl.AlbumFilter{})
		require.Equal(t, cl.ErrNotFound, errors.Cause(err))

		// A new artist with the same name starts without albums.
		createTestArtist(t, c, "test-artist")
		albums, err := c.ListAlbumsForArtist(ctx, "test-artist", cl.AlbumFilter{})
		require.NoError(t, err)
		require.Empty(t, albums)
	})
}

func TestCreateAlbum(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail for an unknown artist", func(t *testing.T) {
		c := newCatalog()
		createTestArtist(t, c, "someone-else")

		for _, price := range []float64{0, 10, 99.99} {
			_, err := c.CreateAlbum(ctx, cl.CreateAlbumRequest{
				Name:        "ep 1",
				ReleaseDate: cl.NewDate(2024, time.January, 20),
				Price:       price,
				ArtistName:  "test-artist",
			})
			require.Equal(t, cl.ErrNotFound, errors.Cause(err))
			require.Contains(t, err.Error(), "test-artist")
		}
	})

	t.Run("should reference the resolved artist", func(t *testing.T) {
		c := newCatalog()
		artist := createTestArtist(t, c, "test-artist")

		album := createTestAlbum(t, c, "test-artist", 10, cl.NewDate(2024, time.January, 20))
		require.NotEmpty(t, album.ID)
		require.Equal(t, artist.ID, album.ArtistID)
		require.Equal(t, "test-artist", album.ArtistName)
		require.Equal(t, "ep 1", album.Name)
		require.Equal(t, 10.0, album.Price)
		require.Equal(t, "2024-01-20", album.ReleaseDate.String())
	})
}

func TestListAlbumsForArtistBounds(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()
	createTestArtist(t, c, "test-artist")
	createTestAlbum(t, c, "test-artist", 10, cl.NewDate(2024, time.January, 20))

	day := func(y int, m time.Month, d int) null.Time {
		return null.TimeFrom(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	}

	table := []struct {
		label  string
		f      cl.AlbumFilter
		expLen int
	}{
		{"no bounds", cl.AlbumFilter{}, 1},
		{"min_price above", cl.AlbumFilter{MinPrice: null.FloatFrom(11)}, 0},
		{"max_price below", cl.AlbumFilter{MaxPrice: null.FloatFrom(9)}, 0},
		{"min_date before", cl.AlbumFilter{MinDate: day(2024, time.January, 19)}, 1},
		{"max_date a year earlier", cl.AlbumFilter{MaxDate: day(2023, time.January, 19)}, 0},
		{"max_date on the release day", cl.AlbumFilter{MaxDate: day(2024, time.January, 20)}, 1},
		{"min_date on the release day", cl.AlbumFilter{MinDate: day(2024, time.January, 20)}, 1},
		{"price pinned to the album", cl.AlbumFilter{MinPrice: null.FloatFrom(10), MaxPrice: null.FloatFrom(10)}, 1},
		{"min_price of zero", cl.AlbumFilter{MinPrice: null.FloatFrom(0)}, 1},
		{"inverted price bounds", cl.AlbumFilter{MinPrice: null.FloatFrom(20), MaxPrice: null.FloatFrom(5)}, 0},
		{"one failing bound among passing ones", cl.AlbumFilter{MinPrice: null.FloatFrom(5), MaxDate: day(2023, time.January, 19)}, 0},
	}
	for _, ts := range table {
		t.Run(ts.label, func(t *testing.T) {
			albums, err := c.ListAlbumsForArtist(ctx, "test-artist", ts.f)
			require.NoError(t, err)
			require.NotNil(t, albums)
			require.Len(t, albums, ts.expLen)

			again, err := c.ListAlbumsForArtist(ctx, "test-artist", ts.f)
			require.NoError(t, err)
			require.Equal(t, albums, again)
		})
	}
}

func TestListAlbumsForArtistScoping(t *testing.T) {
	c := newCatalog()
	ctx := context.Background()
	createTestArtist(t, c, "first")
	createTestArtist(t, c, "second")
	createTestAlbum(t, c, "first", 12, cl.NewDate(2021, time.March, 1))
	createTestAlbum(t, c, "first", 8, cl.NewDate(2019, time.June, 5))
	createTestAlbum(t, c, "second", 10, cl.NewDate(2020, time.May, 2))

	albums, err := c.ListAlbumsForArtist(ctx, "first", cl.AlbumFilter{})
	require.NoError(t, err)
	require.Len(t, albums, 2)
	require.Equal(t, "2019-06-05", albums[0].ReleaseDate.String())
	require.Equal(t, "2021-03-01", albums[1].ReleaseDate.String())
	for _, a := range albums {
		require.Equal(t, "first", a.ArtistName)
	}

	_, err = c.ListAlbumsForArtist(ctx, "nobody", cl.AlbumFilter{})
	require.Equal(t, cl.ErrNotFound, errors.Cause(err))
}

func TestStorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")

	t.Run("should fail when no session can be acquired", func(t *testing.T) {
		s := &mock.Store{DoErr: boom}
		c := &Catalog{Store: s, Logger: tm.NopLogger}

		_, err := c.ListArtists(ctx)
		require.Equal(t, boom, errors.Cause(err))
		require.Equal(t, []string{"list_artists"}, s.Labels)
	})

	t.Run("should not create an album when the insert fails", func(t *testing.T) {
		var created bool
		s := &mock.Store{Session: &mock.Session{
			GetArtistByNameFn: func(ctx context.Context, name string) (cl.Artist, error) {
				return cl.Artist{ID: "a1", Name: name}, nil
			},
			CreateAlbumFn: func(ctx context.Context, a cl.Album) (cl.Album, error) {
				created = true
				require.Equal(t, "a1", a.ArtistID)
				return cl.Album{}, boom
			},
		}}
		c := &Catalog{Store: s, Logger: tm.NopLogger}

		_, err := c.CreateAlbum(ctx, cl.CreateAlbumRequest{Name: "ep 1", ArtistName: "test-artist"})
		require.True(t, created)
		require.Equal(t, boom, errors.Cause(err))
		require.Equal(t, []string{"create_album"}, s.Labels)
	})

	t.Run("should scope the filter to the resolved artist", func(t *testing.T) {
		s := &mock.Store{Session: &mock.Session{
			GetArtistByNameFn: func(ctx context.Context, name string) (cl.Artist, error) {
				return cl.Artist{ID: "a1", Name: name}, nil
			},
			ListAlbumsFn: func(ctx context.Context, f cl.AlbumFilter) ([]cl.Album, error) {
				require.Equal(t, "a1", f.ArtistID)
				return nil, nil
			},
		}}
		c := &Catalog{Store: s, Logger: tm.NopLogger}

		albums, err := c.ListAlbumsForArtist(ctx, "test-artist", cl.AlbumFilter{ArtistID: "ignored"})
		require.NoError(t, err)
		require.NotNil(t, albums)
		require.Empty(t, albums)
	})
}
