package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/orgmap/pkg/errors"
)

// Format identifies the encoding of a source document.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the format from a file extension. Anything other
// than .toml is treated as JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Decode parses a source document. A JSON document that is the literal null
// yields a nil *Source and a nil error. Malformed documents return a
// VALIDATION_ERROR wrapping the decoder error.
func Decode(data []byte, format Format) (*Source, error) {
	switch format {
	case FormatTOML:
		var src Source
		if _, err := toml.Decode(string(data), &src); err != nil {
			return nil, errors.Wrap(errors.ErrCodeValidation, err, "decode TOML source")
		}
		return &src, nil
	case FormatJSON, "":
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 {
			return nil, errors.Validation("empty source document")
		}
		var src *Source
		if err := json.Unmarshal(trimmed, &src); err != nil {
			return nil, errors.Wrap(errors.ErrCodeValidation, err, "decode JSON source")
		}
		return src, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported source format %q", format)
	}
}

// Read decodes a source document from r.
func Read(r io.Reader, format Format) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Decode(data, format)
}

// Encode writes src as indented JSON.
func Encode(w io.Writer, src *Source) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(src); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
