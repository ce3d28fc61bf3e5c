//go:build !sqlite_cgo

package sqlite

// This file is compiled by default. It uses a pure Go SQLite implementation.
//
// Build command:
//   CGO_ENABLED=0 go build ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the database/sql driver used to open material databases.
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)
