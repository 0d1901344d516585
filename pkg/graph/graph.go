package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// MindMap Serialization API
// =============================================================================

// Marshal encodes m as indented JSON.
func Marshal(m MindMap) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a MindMap.
func Unmarshal(data []byte) (MindMap, error) {
	var m MindMap
	if err := json.Unmarshal(data, &m); err != nil {
		return MindMap{}, fmt.Errorf("decode: %w", err)
	}
	return m, nil
}

// Write writes m as indented JSON to w.
func Write(w io.Writer, m MindMap) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a MindMap from r.
func Read(r io.Reader) (MindMap, error) {
	var m MindMap
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return MindMap{}, fmt.Errorf("decode: %w", err)
	}
	return m, nil
}

// WriteFile writes m to a JSON file.
func WriteFile(m MindMap, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, m)
}

// ReadFile reads a MindMap from a JSON file.
func ReadFile(path string) (MindMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return MindMap{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
