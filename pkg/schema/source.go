package schema

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Source identifies where a schema document lives so loaders can read files,
// fs.FS entries, or URLs without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// DefaultPage is the page rendered when a request names none.
const DefaultPage = "gov"

// SchemaFileName is the file holding a page schema inside its directory.
const SchemaFileName = "schema.json"

var pagePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrInvalidPage is returned for page identifiers that are not bare names.
var ErrInvalidPage = errors.New("schema: invalid page identifier")

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(p string) Source {
	return fileSource{path: filepath.Clean(p)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }

func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }

func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("schema: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("schema: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// ValidatePage checks that page is a bare identifier safe to splice into a
// path or URL.
func ValidatePage(page string) error {
	if !pagePattern.MatchString(page) {
		return fmt.Errorf("%w %q", ErrInvalidPage, page)
	}
	return nil
}

// PagePath returns the slash separated location of a page schema relative to
// a schema root, e.g. "gov/schema.json".
func PagePath(page string) (string, error) {
	if err := ValidatePage(page); err != nil {
		return "", err
	}
	return path.Join(page, SchemaFileName), nil
}

// PageLocator maps page identifiers onto Sources.
type PageLocator interface {
	Locate(page string) (Source, error)
}

// DirLocator resolves pages under an on-disk directory.
type DirLocator struct {
	Root string
}

// Locate implements PageLocator.
func (l DirLocator) Locate(page string) (Source, error) {
	rel, err := PagePath(page)
	if err != nil {
		return nil, err
	}
	return SourceFromFile(filepath.Join(l.Root, filepath.FromSlash(rel))), nil
}

// FSLocator resolves pages inside an fs.FS, optionally below Prefix.
type FSLocator struct {
	Prefix string
}

// Locate implements PageLocator.
func (l FSLocator) Locate(page string) (Source, error) {
	rel, err := PagePath(page)
	if err != nil {
		return nil, err
	}
	if prefix := strings.Trim(l.Prefix, "/"); prefix != "" {
		rel = path.Join(prefix, rel)
	}
	return SourceFromFS(rel), nil
}

// URLLocator resolves pages relative to a base URL, e.g.
// https://example.org/schemas/ -> https://example.org/schemas/gov/schema.json.
type URLLocator struct {
	BaseURL string
}

// Locate implements PageLocator.
func (l URLLocator) Locate(page string) (Source, error) {
	rel, err := PagePath(page)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(strings.TrimSpace(l.BaseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("schema: invalid base URL %q", l.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return SourceFromURL(base.ResolveReference(&url.URL{Path: rel}).String()), nil
}
