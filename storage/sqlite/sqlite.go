package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/materia/core"
	"github.com/poiesic/materia/storage"
)

// Repository reads materials from a SQLite material database.
type Repository struct {
	db *sql.DB
}

var _ storage.MaterialRepository = (*Repository)(nil)

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Open opens the material database at dbPath, creating missing tables.
func Open(dbPath string) (storage.MaterialRepository, error) {
	return open(context.Background(), dbPath)
}

func open(ctx context.Context, dbPath string) (*Repository, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// ListLibraries returns every library ordered by ID.
func (r *Repository) ListLibraries(ctx context.Context) ([]*core.Library, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(source_path, '')
		FROM material_libraries
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var libs []*core.Library
	for rows.Next() {
		lib := &core.Library{}
		if err := rows.Scan(&lib.Id, &lib.Name, &lib.Description, &lib.SourcePath); err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}
	return libs, rows.Err()
}

// LibraryName returns the display name of a library.
func (r *Repository) LibraryName(ctx context.Context, lib core.LibraryID) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, "SELECT name FROM material_libraries WHERE id = ?", lib).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %d", storage.ErrLibraryNotFound, lib)
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// ListMaterials enumerates a library's materials ordered by file name.
// Samplers and parameters are not loaded.
func (r *Repository) ListMaterials(ctx context.Context, lib core.LibraryID) ([]*core.Material, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, library_id, COALESCE(NULLIF(filename, ''), file_name), file_path, COALESCE(shader_path, '')
		FROM materials
		WHERE library_id = ?
		ORDER BY file_name, id`, lib)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []*core.Material
	for rows.Next() {
		m := &core.Material{}
		if err := rows.Scan(&m.Id, &m.LibraryId, &m.Filename, &m.FilePath, &m.ShaderPath); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// ListSamplers returns the samplers of a material in sort order.
func (r *Repository) ListSamplers(ctx context.Context, id core.ID) ([]core.Sampler, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT type, COALESCE(path, ''), COALESCE(key_value, ''), COALESCE(unk14_x, 0), COALESCE(unk14_y, 0)
		FROM material_samplers
		WHERE material_id = ?
		ORDER BY sort_order, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	samplers := []core.Sampler{}
	for rows.Next() {
		var s core.Sampler
		var key string
		if err := rows.Scan(&s.Type, &s.Path, &key, &s.ExtraX, &s.ExtraY); err != nil {
			return nil, err
		}
		s.Key = parseKey(key)
		samplers = append(samplers, s)
	}
	return samplers, rows.Err()
}

// ListParameters returns the parameters of a material in sort order.
func (r *Repository) ListParameters(ctx context.Context, id core.ID) ([]core.Parameter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, type, value, COALESCE(key_value, '')
		FROM material_params
		WHERE material_id = ?
		ORDER BY sort_order, id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	params := []core.Parameter{}
	for rows.Next() {
		var p core.Parameter
		var value sql.NullString
		var key string
		if err := rows.Scan(&p.Name, &p.Type, &value, &key); err != nil {
			return nil, err
		}
		if value.Valid {
			p.Value = decodeValue(value.String)
		}
		p.Key = parseKey(key)
		params = append(params, p)
	}
	return params, rows.Err()
}

func parseKey(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// decodeValue interprets a stored parameter value. Values are JSON encoded;
// text that isn't valid JSON is taken as a plain string.
func decodeValue(text string) core.Value {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return core.StringValue(text)
	}
	switch v := raw.(type) {
	case nil:
		return core.Value{}
	case float64:
		return core.NumberValue(v)
	case bool:
		if v {
			return core.NumberValue(1)
		}
		return core.NumberValue(0)
	case string:
		return core.StringValue(v)
	case []any:
		arr := make([]float64, 0, len(v))
		for _, e := range v {
			switch n := e.(type) {
			case float64:
				arr = append(arr, n)
			case bool:
				if n {
					arr = append(arr, 1)
				} else {
					arr = append(arr, 0)
				}
			default:
				return core.StringValue(text)
			}
		}
		return core.Value{Kind: core.ValueArray, Array: arr}
	}
	return core.StringValue(text)
}
