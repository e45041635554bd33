package postgres

import (
	"context"
	"regexp"
	"strings"
	"time"

	"music-catalog/internal"
	cl "music-catalog/pkg/catalog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/postgres"
)

type Config postgres.Config

var matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
var matchAllCap = regexp.MustCompile("([a-z0-9])([A-Z])")

func ToSnakeCase(str string) string {
	snake := matchFirstCap.ReplaceAllString(str, "${1}_${2}")
	snake = matchAllCap.ReplaceAllString(snake, "${1}_${2}")
	return strings.ToLower(snake)
}

// Postgres represents the type to interact with the PostgreSQL database.
type Postgres struct {
	sqldb *sqlx.DB
	db    *postgres.DB
}

var _ internal.Store = (*Postgres)(nil)

type QueryValues struct {
	query string
	args  []interface{}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// New creates a new Postgres store. Every call to Do is bounded by timeout
// (no bound when <= 0) and reported to logger when it completes.
func New(c Config, logger tools.Logger, timeout time.Duration) (*Postgres, error) {
	db, err := postgres.NewDB(postgres.Config(c),
		postgres.WithTimeout(timeout),
		postgres.WithOnComplete(logCompletion(logger)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	sqldb := sqlx.NewDb(db.SQLDB(), "postgres")
	sqldb.MapperFunc(ToSnakeCase)
	return &Postgres{sqldb: sqldb, db: db}, nil
}

// Ping verifies the database is reachable.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Do(ctx, "ping", func(ctx context.Context, conn postgres.Conn) error {
		return conn.PingContext(ctx)
	})
}

// Close releases every pooled connection.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Do runs fn inside a transaction scoped to a single database operation.
func (p *Postgres) Do(ctx context.Context, label string, fn func(context.Context, internal.Session) error) error {
	return p.db.Do(ctx, label, func(ctx context.Context, _ postgres.Conn) error {
		return p.withTx(ctx, fn)
	})
}

func (p *Postgres) withTx(ctx context.Context, fn func(context.Context, internal.Session) error) (err error) {
	tx, err := p.sqldb.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(ctx, &session{tx: tx}); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

func logCompletion(logger tools.Logger) func(context.Context, string, time.Time, error) error {
	return func(ctx context.Context, label string, start time.Time, err error) error {
		if err != nil && errors.Cause(err) != cl.ErrNotFound && errors.Cause(err) != cl.ErrConflict {
			logger.Warn("postgres operation failed",
				"label", label,
				"duration", time.Since(start),
				"details", err.Error(),
			)
			return err
		}
		logger.Debug("postgres operation complete",
			"label", label,
			"duration", time.Since(start),
		)
		return err
	}
}

// session implements internal.Session on a single transaction.
type session struct {
	tx *sqlx.Tx
}

// constraintError translates constraint violations into catalog errors and
// returns any other error unchanged.
func constraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code.Name() {
	case "unique_violation":
		return cl.ErrConflict
	case "foreign_key_violation":
		return cl.ErrNotFound
	}
	return err
}
