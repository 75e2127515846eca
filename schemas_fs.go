// Package codejson is the top-level entry point: it compiles a page's JSON
// Schema into form components and reduces flat submissions into code.json
// documents. The building blocks live under pkg/.
package codejson

import (
	"io/fs"

	"github.com/goliatone/go-codejson/schemas"
)

// SchemasFS exposes the embedded page schemas laid out as <page>/schema.json
// so applications can serve or extend them.
//
// Typical mount:
//
//	mux.Handle("/schemas/",
//	  http.StripPrefix("/schemas/",
//	    http.FileServerFS(codejson.SchemasFS()),
//	  ),
//	)
func SchemasFS() fs.FS {
	return schemas.FS()
}
