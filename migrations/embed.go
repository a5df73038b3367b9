package migrations

import (
	"embed"
	"io/fs"
)

//go:embed *.sql
var Files embed.FS

// GetFS returns the embedded schema migration files
func GetFS() fs.FS {
	return Files
}
