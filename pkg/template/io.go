package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/widget"
)

// =============================================================================
// Template Serialization API
// =============================================================================

// Marshal converts a template to indented JSON bytes.
func Marshal(t Template) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a template to a JSON file.
// The file is written to a temporary sibling first and renamed into place.
func WriteFile(t Template, path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := writeTo(t, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Write writes a template as JSON to an io.Writer.
func Write(t Template, w io.Writer) error {
	return writeTo(t, w)
}

// ReadFile reads and decodes a JSON template file.
// Decoding rejects unknown widget kinds; call Template.Check for the
// structural invariants.
func ReadFile(path string) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Template{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "template %s not found", path)
		}
		return Template{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Read decodes a JSON template from an io.Reader.
func Read(r io.Reader) (Template, error) {
	return readFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(t Template, w io.Writer) error {
	if t.Widgets == nil {
		t.Widgets = []widget.Widget{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (Template, error) {
	var t Template
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Template{}, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode template")
	}
	return t, nil
}
