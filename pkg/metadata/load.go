package metadata

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/orgmap/pkg/errors"
)

// Stdin is the location that selects standard input in [Load].
const Stdin = "-"

// LoadFile reads and decodes a source file, choosing the format from its
// extension.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return Decode(data, FormatFromPath(path))
}

// Load resolves location to a source document: "-" reads JSON from stdin,
// an http(s) URL is fetched with client (or a default client when nil), and
// anything else is a file path. It returns the decoded source together with
// the raw bytes so callers can cache or store the exact input.
func Load(ctx context.Context, location string, stdin io.Reader, client *Client) (*Source, []byte, error) {
	var (
		data   []byte
		format = FormatFromPath(location)
		err    error
	)
	switch {
	case location == Stdin:
		data, err = io.ReadAll(stdin)
		format = FormatJSON
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		if client == nil {
			client = NewClient(nil)
		}
		data, err = client.Fetch(ctx, location)
	default:
		data, err = os.ReadFile(location)
		if os.IsNotExist(err) {
			err = errors.Wrap(errors.ErrCodeFileNotFound, err, "source file %s", location)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	src, err := Decode(data, format)
	if err != nil {
		return nil, data, err
	}
	return src, data, nil
}
