// Package archive persists sealed season records to an embedded sqlite
// database for the history pages. The engine runs fully in-memory when no
// archive database is configured.
package archive

import (
	"context"
	"database/sql"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"

	"github.com/arkadito/clash-league/db"
	"github.com/arkadito/clash-league/internal/domain/league"
	"github.com/arkadito/clash-league/internal/platform/logging"
)

// Store wraps the archive database.
type Store struct {
	db     *sqlx.DB
	logger *logging.Logger
}

// Open connects to the sqlite file at path and brings the schema up to date.
func Open(path string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := runMigrations(path); err != nil {
		return nil, err
	}

	conn, err := otelsqlx.Open("sqlite", path,
		otelsql.WithAttributes(attribute.String("db.system", "sqlite")),
		otelsql.WithDBName("league_archive"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open archive database")
	}
	// modernc sqlite serializes writes; one connection avoids lock churn.
	conn.SetMaxOpenConns(1)

	return &Store{db: conn, logger: logger}, nil
}

func runMigrations(path string) error {
	src, err := iofs.New(db.Migrations, "migrations")
	if err != nil {
		return errors.Wrap(err, "load embedded migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		return errors.Wrap(err, "init migrations")
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type archiveRow struct {
	Season       int    `db:"season"`
	ChampionID   string `db:"champion_id"`
	ChampionName string `db:"champion_name"`
	Payload      string `db:"payload"`
}

// SaveSeason upserts one sealed season.
func (s *Store) SaveSeason(ctx context.Context, a *league.SeasonArchive) error {
	payload, err := sonic.Marshal(a)
	if err != nil {
		return errors.Wrap(err, "encode season archive")
	}

	const q = `
		INSERT INTO season_archives (season, champion_id, champion_name, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(season) DO UPDATE SET
			champion_id = excluded.champion_id,
			champion_name = excluded.champion_name,
			payload = excluded.payload`
	if _, err := s.db.ExecContext(ctx, q, a.Season, a.ChampionID, a.ChampionName, string(payload)); err != nil {
		return errors.Wrapf(err, "store season %d", a.Season)
	}

	s.logger.InfoContext(ctx, "season archived to database",
		"season", a.Season,
		"champion", a.ChampionName,
	)
	return nil
}

// LoadSeason fetches one sealed season; found is false when absent.
func (s *Store) LoadSeason(ctx context.Context, season int) (*league.SeasonArchive, bool, error) {
	var row archiveRow
	err := s.db.GetContext(ctx, &row,
		`SELECT season, champion_id, champion_name, payload FROM season_archives WHERE season = ?`, season)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "load season %d", season)
	}

	var a league.SeasonArchive
	if err := sonic.Unmarshal([]byte(row.Payload), &a); err != nil {
		return nil, false, errors.Wrapf(err, "decode season %d", season)
	}
	return &a, true, nil
}

// Seasons lists the archived season numbers in ascending order.
func (s *Store) Seasons(ctx context.Context) ([]int, error) {
	var out []int
	if err := s.db.SelectContext(ctx, &out,
		`SELECT season FROM season_archives ORDER BY season ASC`); err != nil {
		return nil, errors.Wrap(err, "list archived seasons")
	}
	return out, nil
}
