// Package schemas embeds the page schemas served when no schema directory or
// base URL is configured.
package schemas

import (
	"embed"
	"io/fs"
)

//go:embed */schema.json
var files embed.FS

// FS returns the embedded page schemas laid out as <page>/schema.json.
func FS() fs.FS {
	return files
}
