package commission

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vdobler/oxyplot"
)

// Source provides the commissioning tables by file name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Location returns where name is read from.
	Location(name string) string
}

// NewSource returns an HTTPSource if loc is an http(s) URL and a DirSource
// otherwise.
func NewSource(loc string, timeout time.Duration) Source {
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return HTTPSource{
			Base:   strings.TrimSuffix(loc, "/"),
			Client: &http.Client{Timeout: timeout},
		}
	}
	return DirSource{Dir: loc}
}

// DirSource reads tables from a directory.
type DirSource struct {
	Dir string
}

func (s DirSource) Location(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(s.Location(name))
}

// HTTPSource fetches tables below a base URL.
type HTTPSource struct {
	Base   string
	Client *http.Client
}

func (s HTTPSource) Location(name string) string {
	return s.Base + "/" + url.PathEscape(name)
}

func (s HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Location(name), nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("request %s: unexpected status %s", name, resp.Status)
	}
	return resp.Body, nil
}

// readTable loads the CSV table name from src.
func readTable(ctx context.Context, src Source, name string) (*oxyplot.DataFrame, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return oxyplot.ReadCSV(rc, name)
}
