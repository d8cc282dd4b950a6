package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/template"
)

// loadTemplate reads a template file and checks its invariants.
func loadTemplate(path string) (template.Template, error) {
	if err := errors.ValidatePath(path); err != nil {
		return template.Template{}, err
	}
	t, err := template.ReadFile(path)
	if err != nil {
		return template.Template{}, fmt.Errorf("load template %s: %w", path, err)
	}
	if err := t.Check(); err != nil {
		return template.Template{}, fmt.Errorf("template %s: %w", path, err)
	}
	return t, nil
}

// saveTemplate writes t to output, or back to input when output is empty,
// and returns the path written.
func saveTemplate(t template.Template, input, output string) (string, error) {
	path := output
	if path == "" {
		path = input
	}
	if err := template.WriteFile(t, path); err != nil {
		return "", fmt.Errorf("write template %s: %w", path, err)
	}
	return path, nil
}

// parseRect parses "x,y,w,h" into a position.
func parseRect(s string) (geom.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Position{}, errors.New(errors.ErrCodeInvalidInput, "position must be x,y,width,height, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Position{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid number %q in position", p)
		}
		v[i] = f
	}
	pos := geom.Position{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	if !pos.Valid() {
		return geom.Position{}, errors.New(errors.ErrCodeInvalidInput, "invalid position %v", pos)
	}
	return pos, nil
}

// parsePages parses a page list such as "1,3-5".
func parsePages(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")
		from, err := strconv.Atoi(lo)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid page %q", part)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(hi); err != nil || to < from {
				return nil, errors.New(errors.ErrCodeInvalidInput, "invalid page range %q", part)
			}
		}
		for p := from; p <= to; p++ {
			out = append(out, p)
		}
	}
	return out, nil
}
