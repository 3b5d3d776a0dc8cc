// Package input decodes JSON, YAML and TOML documents into values whose maps
// keep the key order of the document.
//
// Objects, mappings and tables become insertion-ordered maps wrapped with
// consoledump.Ordered, so a dump lists keys the way the document wrote them.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is a document format.
type Format int

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
	FormatTOML
)

// String returns the lower-case name of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "auto"
	}
}

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", name)
	}
}

// DetectFormat returns the format implied by the extension of filename.
// Unknown extensions are read as YAML, which also accepts JSON.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Decode decodes data in the given format. FormatAuto is read as YAML.
func Decode(data []byte, format Format) (any, error) {
	switch format {
	case FormatTOML:
		return decodeTOML(data)
	default:
		return decodeYAML(data)
	}
}

// DecodeReader reads r to the end and decodes it.
func DecodeReader(r io.Reader, format Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Decode(data, format)
}

// DecodeFile reads and decodes the file at path. With FormatAuto the format
// is taken from the file extension.
func DecodeFile(path string, format Format) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if format == FormatAuto {
		format = DetectFormat(path)
	}
	value, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return value, nil
}
