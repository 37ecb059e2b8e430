package dataset

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/bastiangx/modsearch/internal/utils"
)

// ErrBadStatus is returned when the data server answers with a non-2xx status.
var ErrBadStatus = errors.New("unexpected HTTP status")

// Source fetches the raw dataset document once.
type Source interface {
	Fetch() (io.ReadCloser, Format, error)
	String() string
}

// HTTPSource fetches the dataset with a single GET.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch issues the GET. The format comes from the Content-Type, then from the
// URL extension, and defaults to JSON.
func (s *HTTPSource) Fetch() (io.ReadCloser, Format, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(s.URL)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("failed to fetch %s: %w", s.URL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, FormatUnknown, fmt.Errorf("fetch %s: %s: %w", s.URL, resp.Status, ErrBadStatus)
	}

	format := FormatForContentType(resp.Header.Get("Content-Type"))
	if format == FormatUnknown {
		format = FormatJSON
		if u, err := url.Parse(s.URL); err == nil {
			if f, err := DetectFormat(u.Path); err == nil {
				format = f
			}
		}
	}
	return resp.Body, format, nil
}

func (s *HTTPSource) String() string {
	return s.URL
}

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	Path string
}

// Fetch opens the file; its extension selects the format.
func (s *FileSource) Fetch() (io.ReadCloser, Format, error) {
	format, err := DetectFormat(s.Path)
	if err != nil {
		return nil, FormatUnknown, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, FormatUnknown, fmt.Errorf("failed to open search data %s: %w", s.Path, err)
	}
	return f, format, nil
}

func (s *FileSource) String() string {
	return s.Path
}

// NewSource returns an HTTP source for http(s) locations and a file source otherwise.
func NewSource(location string) Source {
	if utils.IsURL(location) {
		return &HTTPSource{URL: location}
	}
	return &FileSource{Path: location}
}
