package postgres

import (
	"context"
	"database/sql"

	cl "music-catalog/pkg/catalog"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

const tableArtists = "artists"

const (
	artistsColumnID        = `"id"`
	artistsColumnName      = `"name"`
	artistsColumnCreatedAt = `"created_at"`
)

var artistsColumns = []string{
	artistsColumnID,
	artistsColumnName,
	artistsColumnCreatedAt,
}

func (s *session) ListArtists(ctx context.Context) ([]cl.Artist, error) {
	r := []cl.Artist{}
	qv, err := buildListArtistsQuery()
	if err != nil {
		return nil, errors.Wrap(err, "build list artists query")
	}
	err = s.tx.SelectContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		return nil, errors.Wrap(err, "execute list artists query")
	}
	return r, nil
}

func buildListArtistsQuery() (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableArtists, artistsColumns)...).
		From(tableArtists).
		OrderBy(
			tableColumn(tableArtists, artistsColumnCreatedAt),
			tableColumn(tableArtists, artistsColumnID),
		).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "list artists build query into SQL string")
}

func (s *session) GetArtistByName(ctx context.Context, name string) (cl.Artist, error) {
	var r cl.Artist
	qv, err := buildGetArtistByNameQuery(name)
	if err != nil {
		return r, errors.Wrap(err, "build get artist query")
	}
	err = s.tx.GetContext(ctx, &r, qv.query, qv.args...)
	if err == sql.ErrNoRows {
		return r, cl.ErrNotFound
	}
	if err != nil {
		return r, errors.Wrap(err, "execute get artist query")
	}
	return r, nil
}

func buildGetArtistByNameQuery(name string) (QueryValues, error) {
	q, args, err := psql.
		Select(tableColumns(tableArtists, artistsColumns)...).
		From(tableArtists).
		Where(sq.Eq{tableColumn(tableArtists, artistsColumnName): name}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "get artist build query into SQL string")
}

func (s *session) CreateArtist(ctx context.Context, a cl.Artist) (cl.Artist, error) {
	var r cl.Artist
	qv, err := buildCreateArtistQuery(a)
	if err != nil {
		return r, errors.Wrap(err, "build create artist query")
	}
	err = s.tx.GetContext(ctx, &r, qv.query, qv.args...)
	if err != nil {
		if cerr := constraintError(err); cerr != err {
			return r, cerr
		}
		return r, errors.Wrap(err, "execute create artist query")
	}
	return r, nil
}

func buildCreateArtistQuery(a cl.Artist) (QueryValues, error) {
	q, args, err := psql.
		Insert(tableArtists).
		Columns(artistsColumnID, artistsColumnName).
		Values(a.ID, a.Name).
		Suffix(returning(artistsColumns)).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "create artist build query into SQL string")
}

// DeleteArtist removes the artist row; the schema cascades the delete to the
// artist's albums.
func (s *session) DeleteArtist(ctx context.Context, id string) error {
	qv, err := buildDeleteArtistQuery(id)
	if err != nil {
		return errors.Wrap(err, "build delete artist query")
	}
	res, err := s.tx.ExecContext(ctx, qv.query, qv.args...)
	if err != nil {
		return errors.Wrap(err, "execute delete artist query")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete artist rows affected")
	}
	if n == 0 {
		return cl.ErrNotFound
	}
	return nil
}

func buildDeleteArtistQuery(id string) (QueryValues, error) {
	q, args, err := psql.
		Delete(tableArtists).
		Where(sq.Eq{artistsColumnID: id}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "delete artist build query into SQL string")
}
