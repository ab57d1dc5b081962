// Package manifest loads a declared architecture from its YAML manifest.
// The manifest is the Go-side equivalent of declaring the graph in code: a
// single architecture.yaml at the project root listing goals, solutions,
// and implementations with id cross-references.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"archcheck/internal/model"

	"gopkg.in/yaml.v3"
)

// DefaultName is the manifest file looked for at the project root when no
// explicit path is given.
const DefaultName = "architecture.yaml"

// Load reads and decodes the manifest at path. Unknown fields are rejected
// so typos in the declaration surface immediately instead of silently
// dropping a constraint or file list.
func Load(path string) (*model.Architecture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	arch, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return arch, nil
}

// Decode parses manifest bytes into an Architecture.
func Decode(data []byte) (*model.Architecture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var arch model.Architecture
	if err := dec.Decode(&arch); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty manifest")
		}
		return nil, err
	}
	return &arch, nil
}
