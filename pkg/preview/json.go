package preview

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/inkframe/pkg/widget"
)

// RenderJSON encodes the page model: canvas, effective widgets in draw order,
// warnings and guides.
func RenderJSON(p Page) ([]byte, error) {
	if p.Widgets == nil {
		p.Widgets = []widget.Widget{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encode page %d: %w", p.Number, err)
	}
	return buf.Bytes(), nil
}
