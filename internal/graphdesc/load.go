package graphdesc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encoding is a description file encoding.
type Encoding string

// Supported encodings.
const (
	EncodingTOML Encoding = "toml"
	EncodingYAML Encoding = "yaml"
)

// ErrUnknownEncoding is returned for files whose extension is neither
// TOML nor YAML.
var ErrUnknownEncoding = errors.New("graphdesc: unknown description encoding")

// EncodingOf returns the encoding implied by the extension of path.
func EncodingOf(path string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return EncodingTOML, nil
	case ".yaml", ".yml":
		return EncodingYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, path)
	}
}

// Load reads and validates the description at path.
func Load(path string) (*Description, error) {
	enc, err := EncodingOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graphdesc: %w", err)
	}
	d, err := Parse(data, enc)
	if err != nil {
		return nil, fmt.Errorf("graphdesc: %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates a description. Unknown keys are rejected.
func Parse(data []byte, enc Encoding) (*Description, error) {
	var d Description
	switch enc {
	case EncodingTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case EncodingYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
