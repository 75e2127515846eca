// Package loader implements schema.Loader for local files, fs.FS trees and
// HTTP. Every failure is reported as a *schema.LoadError so callers can match
// schema.ErrSchemaLoad and show the page as not ready.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-codejson/pkg/schema"
)

var (
	errNilSource    = errors.New("source is nil")
	errHTTPDisabled = errors.New("http sources are disabled")
	errUnknownKind  = errors.New("unsupported source kind")
)

// Loader reads page schema documents. It is safe for concurrent use.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
}

var _ schema.Loader = (*Loader)(nil)

// New builds a Loader. URL sources are only served when an HTTP client is
// supplied or the HTTP fallback is enabled.
func New(options schema.LoaderOptions) *Loader {
	l := &Loader{files: options.FileSystem, timeout: options.RequestTimeout}
	if options.HTTPClient != nil {
		client := *options.HTTPClient
		if client.Timeout == 0 {
			client.Timeout = l.timeout
		}
		l.client = &client
	} else if options.AllowHTTPFallback {
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load fetches the payload behind src and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, &schema.LoadError{Err: errNilSource}
	}
	data, err := l.fetch(ctx, src)
	if err == nil {
		var doc schema.Document
		if doc, err = schema.NewDocument(src, data); err == nil {
			return doc, nil
		}
	}
	return schema.Document{}, &schema.LoadError{Location: src.Location(), Err: err}
}

func (l *Loader) fetch(ctx context.Context, src schema.Source) ([]byte, error) {
	location := src.Location()
	switch src.Kind() {
	case schema.SourceKindFile:
		return loadFile(ctx, location)
	case schema.SourceKindFS:
		return loadFromFS(ctx, l.files, location)
	case schema.SourceKindURL:
		if l.client == nil {
			return nil, errHTTPDisabled
		}
		return loadHTTP(ctx, l.client, location, l.timeout)
	}
	return nil, errUnknownKind
}
