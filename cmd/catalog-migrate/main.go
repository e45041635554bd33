package main

import (
	"fmt"
	"net/url"
	"os"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/zap"
)

var version string

type options struct {
	database   string
	host       string
	user       string
	password   string
	source     string
	disableSSL bool
}

func (o options) dsn() string {
	sslmode := "require"
	if o.disableSSL {
		sslmode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(o.user, o.password),
		Host:     o.host,
		Path:     "/" + o.database,
		RawQuery: "sslmode=" + sslmode,
	}
	return u.String()
}

func main() {
	logger := zap.New("catalog-migrate", version, os.Stdout)
	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("migration failed", "details", err.Error())
		os.Exit(1)
	}
}

func newRootCmd(logger tools.Logger) *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:           "catalog-migrate",
		Short:         "Apply the music catalog schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.database, "database", "postgres", "database name")
	flags.StringVar(&o.host, "host", "localhost:5432", "database host:port")
	flags.StringVar(&o.user, "user", "postgres", "database user")
	flags.StringVar(&o.password, "password", "", "database password")
	flags.StringVar(&o.source, "source", "file://db/migrations", "migrations source URL")
	flags.BoolVar(&o.disableSSL, "disable-ssl", true, "connect with sslmode=disable")

	root.AddCommand(
		newUpCmd(&o, logger),
		newDownCmd(&o, logger),
		newVersionCmd(&o),
	)
	return root
}

func newUpCmd(o *options, logger tools.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := migrate.New(o.source, o.dsn())
			if err != nil {
				return errors.Wrap(err, "open migrations")
			}
			defer m.Close()

			if err := m.Up(); err != nil && err != migrate.ErrNoChange {
				return errors.Wrap(err, "migrate up")
			}
			logger.Info("migrations applied", "database", o.database)
			return nil
		},
	}
}

func newDownCmd(o *options, logger tools.Logger) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps <= 0 {
				return fmt.Errorf("steps must be positive, got %d", steps)
			}
			m, err := migrate.New(o.source, o.dsn())
			if err != nil {
				return errors.Wrap(err, "open migrations")
			}
			defer m.Close()

			if err := m.Steps(-steps); err != nil && err != migrate.ErrNoChange {
				return errors.Wrap(err, "migrate down")
			}
			logger.Info("migrations rolled back", "database", o.database, "steps", steps)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	return cmd
}

func newVersionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := migrate.New(o.source, o.dsn())
			if err != nil {
				return errors.Wrap(err, "open migrations")
			}
			defer m.Close()

			v, dirty, err := m.Version()
			if err == migrate.ErrNilVersion {
				fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				return nil
			}
			if err != nil {
				return errors.Wrap(err, "read version")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
			return nil
		},
	}
}
