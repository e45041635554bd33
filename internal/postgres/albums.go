package postgres

import (
	"context"

	cl "music-catalog/pkg/catalog"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

const tableAlbums = "albums"

const (
	albumsColumnID          = `"id"`
	albumsColumnName        = `"name"`
	albumsColumnReleaseDate = `"release_date"`
	albumsColumnPrice       = `"price"`
	albumsColumnArtistID    = `"artist_id"`
	albumsColumnCreatedAt   = `"created_at"`
)

var albumsColumns = []string{
	albumsColumnID,
	albumsColumnName,
	albumsColumnReleaseDate,
	albumsColumnPrice,
	albumsColumnArtistID,
	albumsColumnCreatedAt,
}

// The owning artist's name is read through the foreign key rather than
// stored on the album row.
var albumsArtistNameColumn = tableColumn(tableArtists, artistsColumnName) + ` AS "artist_name"`

func (s *session) CreateAlbum(ctx context.Context, a cl.Album) (cl.Album, error) {
	var r cl.Album
	qv, err := buildCreateAlbumQuery(a)
	if err != nil {
		return r, errors.Wrap(err, "build create album query")
	}
	err = s.tx.GetContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		if cerr := constraintError(err); cerr != err {
			return r, cerr
		}
		return r, errors.Wrap(err, "execute create album query")
	}
	r.ArtistName = a.ArtistName
	return r, nil
}

func buildCreateAlbumQuery(a cl.Album) (QueryValues, error) {
	q, args, err := psql.
		Insert(tableAlbums).
		Columns(
			albumsColumnID,
			albumsColumnName,
			albumsColumnReleaseDate,
			albumsColumnPrice,
			albumsColumnArtistID,
		).
		Values(a.ID, a.Name, a.ReleaseDate.String(), a.Price, a.ArtistID).
		Suffix(returning(albumsColumns)).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "create album build query into SQL string")
}

func (s *session) ListAlbums(ctx context.Context, f cl.AlbumFilter) ([]cl.Album, error) {
	r := []cl.Album{}
	qv, err := buildListAlbumsQuery(f)
	if err != nil {
		return nil, errors.Wrap(err, "build list albums query")
	}
	err = s.tx.SelectContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		return nil, errors.Wrap(err, "execute list albums query")
	}
	return r, nil
}

func buildListAlbumsQuery(f cl.AlbumFilter) (QueryValues, error) {
	columns := append(tableColumns(tableAlbums, albumsColumns), albumsArtistNameColumn)
	q, args, err := psql.
		Select(columns...).
		From(tableAlbums).
		Join(joinOn(tableArtists, tableColumn(tableArtists, artistsColumnID), tableColumn(tableAlbums, albumsColumnArtistID))).
		Where(albumFilterPredicate(f)).
		OrderBy(
			tableColumn(tableAlbums, albumsColumnReleaseDate),
			tableColumn(tableAlbums, albumsColumnCreatedAt),
			tableColumn(tableAlbums, albumsColumnID),
		).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "list albums build query into SQL string")
}

// albumFilterPredicate mirrors cl.AlbumFilter.Match: one inclusive clause
// per bound that is set.
func albumFilterPredicate(f cl.AlbumFilter) sq.And {
	price := tableColumn(tableAlbums, albumsColumnPrice)
	releaseDate := tableColumn(tableAlbums, albumsColumnReleaseDate)

	pred := sq.And{sq.Eq{tableColumn(tableAlbums, albumsColumnArtistID): f.ArtistID}}
	if f.MinPrice.Valid {
		pred = append(pred, sq.GtOrEq{price: f.MinPrice.Float64})
	}
	if f.MaxPrice.Valid {
		pred = append(pred, sq.LtOrEq{price: f.MaxPrice.Float64})
	}
	if f.MinDate.Valid {
		pred = append(pred, sq.GtOrEq{releaseDate: cl.DateOf(f.MinDate.Time).String()})
	}
	if f.MaxDate.Valid {
		pred = append(pred, sq.LtOrEq{releaseDate: cl.DateOf(f.MaxDate.Time).String()})
	}
	return pred
}
