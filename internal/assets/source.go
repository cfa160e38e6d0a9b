package assets

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

//go:embed images
var embedded embed.FS

// Source resolves manifest paths to readable image data.
type Source interface {
	// Open returns the raw bytes of the named asset.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Location describes where name resolves to, for logs and errors.
	Location(name string) string
}

// DirSource reads assets from a file system.
type DirSource struct {
	FS   fs.FS
	Root string // Display name of the file system root
}

// Open implements Source.
func (s DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return s.FS.Open(name)
}

// Location implements Source.
func (s DirSource) Location(name string) string {
	return path.Join(s.Root, name)
}

// Embedded returns the images bundled with the binary.
func Embedded() DirSource {
	return DirSource{FS: embedded, Root: "embedded:"}
}

// EmbeddedFS exposes the bundled images for serving over HTTP.
func EmbeddedFS() fs.FS {
	return embedded
}

// HTTPSource fetches assets from a static file server.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource creates a source rooted at baseURL. A nil client uses
// http.DefaultClient.
func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("assets: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("assets: base URL %q must be http or https", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

// Open implements Source.
func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Location(name), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// Location implements Source.
func (s *HTTPSource) Location(name string) string {
	return s.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(name, "/")}).String()
}
