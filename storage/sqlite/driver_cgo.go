//go:build sqlite_cgo

package sqlite

// This file is compiled with the sqlite_cgo tag. It links the C SQLite
// library, which is faster on large material databases.
//
// Build command:
//   CGO_ENABLED=1 go build -tags "sqlite_cgo" ./...
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the database/sql driver used to open material databases.
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration
	BuildMode = "cgo"
)
