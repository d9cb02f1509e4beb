package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/niksmo/qkart/config"
	"github.com/spf13/pflag"
)

const (
	storagePathFlag   = "storage-path"
	migrationPathFlag = "migrations-path"
	downFlag          = "down"
	versionFlag       = "version"
)

type flags struct {
	storagePath    string
	migrationsPath string
	down           int
	version        bool
}

func main() {
	f := parseFlags()
	if f.storagePath == "" {
		f.storagePath = dsnFromConfig()
	}
	if err := validateFlags(f); err != nil {
		slog.Error("invalid args", "err", err)
		os.Exit(2)
	}
	if err := run(f); err != nil {
		slog.Error("failed to migrate", "err", err)
		os.Exit(1)
	}
}

type migrationLogger struct {
	logger *slog.Logger
}

func (ml migrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (ml migrationLogger) Verbose() bool { return true }

func parseFlags() flags {
	var f flags
	fs := pflag.CommandLine
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.StringVarP(&f.storagePath, storagePathFlag, "s", "",
		"postgres dsn, session.sql_db of the config when empty")
	fs.StringVarP(&f.migrationsPath, migrationPathFlag, "m", "./migrations",
		"directory of sql migrations")
	fs.IntVarP(&f.down, downFlag, "d", 0, "roll back n migrations instead of applying")
	fs.BoolVar(&f.version, versionFlag, false, "print the applied version and exit")
	pflag.Parse()
	return f
}

// dsnFromConfig falls back to the storefront config only when it selects
// SQL storage.
func dsnFromConfig() string {
	cfg, err := config.LoadFrom(config.FilePath())
	if err != nil || cfg.Session.Storage != config.StorageSQL {
		return ""
	}
	return cfg.Session.SQLDB
}

// pgx5URL rewrites a postgres dsn to the scheme of the migrate pgx driver.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://", "pgx5://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return "pgx5://" + dsn
}

func validateFlags(f flags) error {
	var errs []error

	if f.storagePath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", storagePathFlag))
	}
	if f.migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationPathFlag))
	}
	if f.down < 0 {
		errs = append(errs, fmt.Errorf("--%s flag: must not be negative", downFlag))
	}
	if f.down > 0 && f.version {
		errs = append(errs, fmt.Errorf("--%s and --%s are exclusive", downFlag, versionFlag))
	}

	return errors.Join(errs...)
}

func run(f flags) (err error) {
	m, err := migrate.New("file://"+f.migrationsPath, pgx5URL(f.storagePath))
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		err = errors.Join(err, srcErr, dbErr)
	}()

	m.Log = migrationLogger{slog.Default()}

	if f.version {
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			m.Log.Printf("no migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		m.Log.Printf("version %d, dirty %t", v, dirty)
		return nil
	}

	if f.down > 0 {
		err = m.Steps(-f.down)
	} else {
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		m.Log.Printf("no migrations to apply")
		return nil
	}
	if err != nil {
		return err
	}
	m.Log.Printf("migration applied")
	return nil
}
