package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the material tables when they don't exist yet.
// The layout matches databases written by the material editor, so existing
// files open unchanged.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS material_libraries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		source_path TEXT,
		created_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS materials (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		library_id INTEGER NOT NULL,
		file_path TEXT NOT NULL,
		file_name TEXT NOT NULL,
		filename TEXT,
		shader_path TEXT,
		source_path TEXT,
		compression TEXT,
		key_value TEXT,
		created_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (library_id) REFERENCES material_libraries (id)
	)`,
	`CREATE TABLE IF NOT EXISTS material_params (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		material_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		value TEXT,
		key_value TEXT,
		sort_order INTEGER DEFAULT 0,
		FOREIGN KEY (material_id) REFERENCES materials (id)
	)`,
	`CREATE TABLE IF NOT EXISTS material_samplers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		material_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		path TEXT,
		key_value TEXT,
		unk14_x INTEGER DEFAULT 0,
		unk14_y INTEGER DEFAULT 0,
		sort_order INTEGER DEFAULT 0,
		FOREIGN KEY (material_id) REFERENCES materials (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_materials_library ON materials(library_id)`,
	`CREATE INDEX IF NOT EXISTS idx_params_material_sort ON material_params(material_id, sort_order)`,
	`CREATE INDEX IF NOT EXISTS idx_samplers_material_sort ON material_samplers(material_id, sort_order)`,
}

// EnsureSchema creates any missing material tables and indexes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
