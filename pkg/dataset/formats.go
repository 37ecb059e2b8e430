package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/bastiangx/modsearch/pkg/search"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownFormat is returned when a dataset location has no recognised format.
var ErrUnknownFormat = errors.New("unknown dataset format")

// ErrTrailingData is returned when a dataset document is followed by more data.
var ErrTrailingData = errors.New("unexpected data after search data document")

// Format is the encoding of a dataset document.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON           // search-data.json
	FormatMsgpack        // same document, msgpack encoded
)

// FormatInfo describes a supported dataset encoding.
type FormatInfo struct {
	Format       Format
	Description  string
	Extensions   []string
	ContentTypes []string
}

var supportedFormats = map[Format]FormatInfo{
	FormatJSON: {
		Format:       FormatJSON,
		Description:  "JSON search data",
		Extensions:   []string{".json"},
		ContentTypes: []string{"application/json", "text/json"},
	},
	FormatMsgpack: {
		Format:       FormatMsgpack,
		Description:  "MessagePack search data",
		Extensions:   []string{".msgpack", ".mpk"},
		ContentTypes: []string{"application/msgpack", "application/x-msgpack", "application/vnd.msgpack"},
	},
}

func (f Format) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// ContentType returns the preferred MIME type of the format.
func (f Format) ContentType() string {
	if info, ok := supportedFormats[f]; ok {
		return info.ContentTypes[0]
	}
	return "application/octet-stream"
}

// DetectFormat picks a format from a file name or URL path extension.
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(path.Ext(name))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if ext == e {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("%s: %w", name, ErrUnknownFormat)
}

// FormatForContentType maps a Content-Type header to a format.
// Unknown or missing types report FormatUnknown without error.
func FormatForContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatUnknown
	}
	for format, info := range supportedFormats {
		for _, ct := range info.ContentTypes {
			if mediaType == ct {
				return format
			}
		}
	}
	return FormatUnknown
}

// Decode reads a whole dataset document. Anything after the document,
// other than JSON whitespace, makes it invalid.
func Decode(r io.Reader, format Format) (*search.Dataset, error) {
	var d search.Dataset
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("invalid search data JSON: %w", err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid search data JSON: %w", ErrTrailingData)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(r)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("invalid search data msgpack: %w", err)
		}
		if _, err := dec.PeekCode(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid search data msgpack: %w", ErrTrailingData)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return &d, nil
}

// Encode writes a dataset document.
func Encode(w io.Writer, d *search.Dataset, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", " ")
		return enc.Encode(d)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(d)
	default:
		return ErrUnknownFormat
	}
}
