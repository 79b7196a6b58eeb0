// Package yamlutil is the single place the module touches the YAML library.
// Config files decode strictly into structs; post front matter decodes into
// a generic map.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds a single YAML document.
const MaxInputSize = 1 << 20

var (
	ErrEmpty      = errors.New("yamlutil: empty document")
	ErrTooLarge   = errors.New("yamlutil: document exceeds maximum size")
	ErrSyntax     = errors.New("yamlutil: invalid YAML")
	ErrNotMapping = errors.New("yamlutil: document is not a mapping")
)

func checkSize(data []byte) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), MaxInputSize)
	}
	return nil
}

// syntaxError keeps the library's "[line:col] message" text and hides its
// error type behind ErrSyntax.
func syntaxError(err error) error {
	return fmt.Errorf("%w: %s", ErrSyntax, yaml.FormatError(err, false, false))
}

// DecodeStrict decodes data into the struct pointed to by v. Unknown keys
// are errors, so a misspelled config field does not go unnoticed.
func DecodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	if err := checkSize(data); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return syntaxError(err)
	}
	return nil
}

// DecodeMap decodes a mapping document. An empty document yields an empty,
// non-nil map, which is what "---\n---" front matter means.
func DecodeMap(data []byte) (map[string]any, error) {
	if err := checkSize(data); err != nil {
		return nil, err
	}

	var doc any
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, syntaxError(err)
		}
	}

	switch m := doc.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return m, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, doc)
	}
}
