package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/pkg/metrics"

	_ "modernc.org/sqlite" // database/sql driver
)

// Default sqlite configuration constants.
const (
	driverName         = "sqlite"
	defaultBusyTimeout = 10_000 // ms
	defaultSearchLimit = 10
	maxSearchLimit     = 100

	dateLayout = "2006-01-02"
)

// SQLiteOption applies a configuration option to the sqlite store.
type SQLiteOption func(*sqliteConfig)

type sqliteConfig struct {
	busyTimeout int
	schemas     []string
}

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds.
func WithBusyTimeout(ms int) SQLiteOption {
	return func(c *sqliteConfig) {
		if ms > 0 {
			c.busyTimeout = ms
		}
	}
}

// WithSchema queues SQL to execute after the pragmas are applied. Used by
// tests to build a seeded in-memory store.
func WithSchema(ddl string) SQLiteOption {
	return func(c *sqliteConfig) {
		c.schemas = append(c.schemas, ddl)
	}
}

// SQLiteStore implements Store over a sqlite fight database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens the fight database with production-safe pragmas
// (foreign_keys=ON, journal_mode=WAL, busy_timeout) applied via EXEC.
func Open(ctx context.Context, dsn string, opts ...SQLiteOption) (*SQLiteStore, error) {
	cfg := sqliteConfig{busyTimeout: defaultBusyTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = " + strconv.Itoa(cfg.busyTimeout),
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, p, err)
		}
	}
	for _, ddl := range cfg.schemas {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: schema: %v", ErrUnavailable, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close fight store: %w", err)
	}
	return nil
}

const fighterColumns = `id, name, nickname, nationality, weight_class,
	record_wins, record_losses, record_draws, ko_percentage,
	reach, height, stance, birth_date, debut_date, active`

// observeQuery records the elapsed time of one store query.
func observeQuery(start time.Time) {
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
}

// FindFighter resolves a fighter by fuzzy name match, exact match first,
// then the winningest partial match.
func (s *SQLiteStore) FindFighter(ctx context.Context, name string) (model.Fighter, error) {
	defer observeQuery(time.Now())

	row := s.db.QueryRowContext(ctx, `
		SELECT `+fighterColumns+`
		FROM fighters
		WHERE LOWER(name) LIKE LOWER(?)
		ORDER BY
			CASE WHEN LOWER(name) = LOWER(?) THEN 0 ELSE 1 END,
			record_wins DESC
		LIMIT 1`,
		"%"+name+"%", name)

	f, err := scanFighter(row)
	if err == sql.ErrNoRows {
		return model.Fighter{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return model.Fighter{}, fmt.Errorf("find fighter %q: %w", name, err)
	}
	return f, nil
}

// SearchFighters returns fighters matching the filter, best record first.
func (s *SQLiteStore) SearchFighters(ctx context.Context, f SearchFilter) ([]model.Fighter, error) {
	defer observeQuery(time.Now())

	limit := f.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	q := `SELECT ` + fighterColumns + ` FROM fighters WHERE 1=1`
	args := []any{}
	if f.Query != "" {
		q += ` AND LOWER(name) LIKE LOWER(?)`
		args = append(args, "%"+f.Query+"%")
	}
	if f.WeightClass != "" {
		q += ` AND LOWER(weight_class) = LOWER(?)`
		args = append(args, f.WeightClass)
	}
	if f.ActiveOnly {
		q += ` AND active = 1`
	}
	q += ` ORDER BY record_wins DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search fighters: %w", err)
	}
	defer rows.Close()

	var out []model.Fighter
	for rows.Next() {
		fighter, err := scanFighter(rows)
		if err != nil {
			return nil, fmt.Errorf("search fighters: %w", err)
		}
		out = append(out, fighter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search fighters: %w", err)
	}
	return out, nil
}

// FightHistory returns perspective rows for the fighter's finished fights,
// chronological order.
func (s *SQLiteStore) FightHistory(ctx context.Context, fighterID int64) ([]model.Bout, error) {
	defer observeQuery(time.Now())

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			f.date,
			f.method,
			f.round,
			CASE
				WHEN f.winner_id = ?1 THEN 'Win'
				WHEN f.winner_id IS NULL THEN 'Draw'
				ELSE 'Loss'
			END AS result,
			f.title_fight,
			CASE WHEN f.fighter1_id = ?1 THEN f.fighter2_id ELSE f.fighter1_id END AS opponent_id,
			CASE WHEN f.fighter1_id = ?1 THEN f2.name ELSE f1.name END AS opponent,
			CASE WHEN f.fighter1_id = ?1 THEN f2.record_wins ELSE f1.record_wins END AS opponent_wins
		FROM fights f
		LEFT JOIN fighters f1 ON f.fighter1_id = f1.id
		LEFT JOIN fighters f2 ON f.fighter2_id = f2.id
		WHERE (f.fighter1_id = ?1 OR f.fighter2_id = ?1)
		AND f.status = ?2
		AND f.date IS NOT NULL
		ORDER BY f.date ASC`,
		fighterID, model.StatusFinished)
	if err != nil {
		return nil, fmt.Errorf("fight history %d: %w", fighterID, err)
	}
	defer rows.Close()

	var bouts []model.Bout
	for rows.Next() {
		var (
			b       model.Bout
			date    string
			method  sql.NullString
			round   sql.NullInt64
			result  string
			oppName sql.NullString
			oppWins sql.NullInt64
		)
		if err := rows.Scan(&date, &method, &round, &result, &b.TitleFight, &b.OpponentID, &oppName, &oppWins); err != nil {
			return nil, fmt.Errorf("fight history %d: %w", fighterID, err)
		}
		b.Date = parseDate(date)
		b.Result = model.Result(result)
		b.Method = model.Method(method.String)
		b.Round = int(round.Int64)
		b.Opponent = oppName.String
		b.OpponentWins = int(oppWins.Int64)
		bouts = append(bouts, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fight history %d: %w", fighterID, err)
	}
	return bouts, nil
}

// FightsBetween returns the fights the two fighters had against each other,
// most recent first.
func (s *SQLiteStore) FightsBetween(ctx context.Context, aID, bID int64) ([]model.Fight, error) {
	defer observeQuery(time.Now())

	return s.queryFights(ctx, `
		WHERE (f.fighter1_id = ?1 AND f.fighter2_id = ?2)
		   OR (f.fighter1_id = ?2 AND f.fighter2_id = ?1)
		ORDER BY f.date DESC`,
		aID, bID)
}

// SharedOpponents returns the fighters both aID and bID have faced.
func (s *SQLiteStore) SharedOpponents(ctx context.Context, aID, bID int64) ([]model.Fighter, error) {
	defer observeQuery(time.Now())

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+fighterColumns+`
		FROM fighters
		WHERE id IN (
			SELECT CASE WHEN fighter1_id = ?1 THEN fighter2_id ELSE fighter1_id END
			FROM fights WHERE fighter1_id = ?1 OR fighter2_id = ?1
			INTERSECT
			SELECT CASE WHEN fighter1_id = ?2 THEN fighter2_id ELSE fighter1_id END
			FROM fights WHERE fighter1_id = ?2 OR fighter2_id = ?2
		)
		AND id NOT IN (?1, ?2)
		ORDER BY name ASC`,
		aID, bID)
	if err != nil {
		return nil, fmt.Errorf("shared opponents %d/%d: %w", aID, bID, err)
	}
	defer rows.Close()

	var out []model.Fighter
	for rows.Next() {
		f, err := scanFighter(rows)
		if err != nil {
			return nil, fmt.Errorf("shared opponents %d/%d: %w", aID, bID, err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("shared opponents %d/%d: %w", aID, bID, err)
	}
	return out, nil
}

// Titles returns the fighter's title reigns, most recent win first.
func (s *SQLiteStore) Titles(ctx context.Context, fighterID int64) ([]model.Title, error) {
	defer observeQuery(time.Now())

	rows, err := s.db.QueryContext(ctx, `
		SELECT title_name, won_date, lost_date, defenses_count
		FROM titles
		WHERE fighter_id = ?
		ORDER BY won_date DESC`,
		fighterID)
	if err != nil {
		return nil, fmt.Errorf("titles %d: %w", fighterID, err)
	}
	defer rows.Close()

	var out []model.Title
	for rows.Next() {
		var (
			t        model.Title
			won      string
			lost     sql.NullString
			defenses sql.NullInt64
		)
		if err := rows.Scan(&t.Name, &won, &lost, &defenses); err != nil {
			return nil, fmt.Errorf("titles %d: %w", fighterID, err)
		}
		t.FighterID = fighterID
		t.WonDate = parseDate(won)
		if lost.Valid {
			t.LostDate = parseDate(lost.String)
		}
		t.Defenses = int(defenses.Int64)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("titles %d: %w", fighterID, err)
	}
	return out, nil
}

// UpcomingFights returns scheduled fights inside the window, soonest first.
func (s *SQLiteStore) UpcomingFights(ctx context.Context, within time.Duration, weightClass string) ([]model.Fight, error) {
	defer observeQuery(time.Now())

	now := time.Now().UTC()
	cutoff := now.Add(within)

	where := `
		WHERE f.status = ?1
		AND f.date >= ?2 AND f.date <= ?3`
	args := []any{model.StatusScheduled, now.Format(dateLayout), cutoff.Format(dateLayout)}
	if weightClass != "" {
		where += ` AND LOWER(f.weight_class) = LOWER(?4)`
		args = append(args, weightClass)
	}
	where += ` ORDER BY f.date ASC`

	return s.queryFights(ctx, where, args...)
}

func (s *SQLiteStore) queryFights(ctx context.Context, where string, args ...any) ([]model.Fight, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			f.id, f.date, f.fighter1_id, f.fighter2_id,
			f1.name, f2.name, f.winner_id, f.method, f.round,
			f.title_fight, f.weight_class, f.location, f.status
		FROM fights f
		JOIN fighters f1 ON f.fighter1_id = f1.id
		JOIN fighters f2 ON f.fighter2_id = f2.id
		`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query fights: %w", err)
	}
	defer rows.Close()

	var out []model.Fight
	for rows.Next() {
		var (
			f       model.Fight
			date    string
			winner  sql.NullInt64
			method  sql.NullString
			round   sql.NullInt64
			wc, loc sql.NullString
			status  sql.NullString
		)
		if err := rows.Scan(&f.ID, &date, &f.FighterAID, &f.FighterBID, &f.FighterA, &f.FighterB,
			&winner, &method, &round, &f.TitleFight, &wc, &loc, &status); err != nil {
			return nil, fmt.Errorf("query fights: %w", err)
		}
		f.Date = parseDate(date)
		f.WinnerID = winner.Int64
		f.Method = model.Method(method.String)
		f.Round = int(round.Int64)
		f.WeightClass = wc.String
		f.Location = loc.String
		f.Status = status.String
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query fights: %w", err)
	}
	return out, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFighter(sc scanner) (model.Fighter, error) {
	var (
		f             model.Fighter
		nick, nat, wc sql.NullString
		koPct         sql.NullFloat64
		reach, height sql.NullInt64
		stance        sql.NullString
		birth, debut  sql.NullString
	)
	if err := sc.Scan(&f.ID, &f.Name, &nick, &nat, &wc,
		&f.Wins, &f.Losses, &f.Draws, &koPct,
		&reach, &height, &stance, &birth, &debut, &f.Active); err != nil {
		return model.Fighter{}, err
	}
	f.Nickname = nick.String
	f.Nationality = nat.String
	f.WeightClass = wc.String
	f.KOPercentage = koPct.Float64
	f.ReachCM = int(reach.Int64)
	f.HeightCM = int(height.Int64)
	f.Stance = stance.String
	f.BirthDate = parseDate(birth.String)
	f.DebutDate = parseDate(debut.String)
	return f, nil
}

// parseDate handles full dates and the year-only values that appear on
// older debut records. Unparseable input yields the zero time.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if len(s) == 4 {
		if year, err := strconv.Atoi(s); err == nil {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
