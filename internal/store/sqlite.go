package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/me/slicecfg/internal/profile"
	"github.com/me/slicecfg/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

const profileColumns = `id, name, description, config, created_at, updated_at`

func (s *SQLiteStore) CreateProfile(ctx context.Context, p *model.Profile) error {
	s.logger.Debug("sql", "op", "insert", "table", "profiles", "id", p.ID)

	configJSON, err := p.Config.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, description, slicer, config, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Config.Slicer().Name(), string(configJSON),
		p.CreatedAt.Format(time.RFC3339Nano), p.UpdatedAt.Format(time.RFC3339Nano),
	)
	return mapConstraintErr(err)
}

func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	s.logger.Debug("sql", "op", "select", "table", "profiles", "id", id)

	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (s *SQLiteStore) GetProfileByName(ctx context.Context, name string) (*model.Profile, error) {
	s.logger.Debug("sql", "op", "select_by_name", "table", "profiles", "name", name)

	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (s *SQLiteStore) ListProfiles(ctx context.Context, opts model.ListOptions) ([]*model.Profile, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "profiles", "limit", opts.Limit, "offset", opts.Offset)
	opts.Clamp()

	var whereClauses []string
	var countArgs []any
	if opts.Slicer != "" {
		whereClauses = append(whereClauses, "slicer = ?")
		countArgs = append(countArgs, strings.ToUpper(opts.Slicer))
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`+whereSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT ` + profileColumns + ` FROM profiles` + whereSQL + ` ORDER BY name ASC LIMIT ? OFFSET ?`
	listArgs := append(countArgs, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}

func (s *SQLiteStore) UpdateProfile(ctx context.Context, p *model.Profile) error {
	s.logger.Debug("sql", "op", "update", "table", "profiles", "id", p.ID)

	configJSON, err := p.Config.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET name = ?, description = ?, slicer = ?, config = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Description, p.Config.Slicer().Name(), string(configJSON),
		p.UpdatedAt.Format(time.RFC3339Nano), p.ID,
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("profile %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) DeleteProfile(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "profiles", "id", id)

	result, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(sc scanner) (*model.Profile, error) {
	var p model.Profile
	var configJSON, createdAt, updatedAt string

	if err := sc.Scan(&p.ID, &p.Name, &p.Description, &configJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	cfg, err := profile.Decode([]byte(configJSON))
	if err != nil {
		return nil, fmt.Errorf("decode config for profile %s: %w", p.ID, err)
	}
	p.Config = *cfg
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &p, nil
}

// mapConstraintErr turns a UNIQUE violation on profiles.name into ErrDuplicateName.
func mapConstraintErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed: profiles.name") {
		return fmt.Errorf("%w: %v", ErrDuplicateName, err)
	}
	return err
}

var _ Store = (*SQLiteStore)(nil)

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
