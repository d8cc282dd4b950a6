package widget

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/matzehuels/inkframe/pkg/geom"
)

// wireWidget is the serialized form of a Widget.
//
//	{
//	  "id": "cb-1",
//	  "type": "checkbox",
//	  "page": 3,
//	  "position": {"x": 40, "y": 80, "width": 24, "height": 24},
//	  "style": {"font_size": 10},
//	  "properties": {"box_size": 12, "label": "Done"}
//	}
type wireWidget struct {
	ID         string          `json:"id"`
	Type       Kind            `json:"type"`
	Page       *int            `json:"page,omitempty"`
	Position   geom.Position   `json:"position"`
	Style      *Style          `json:"style,omitempty"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

// MarshalJSON encodes the widget with its payload under "properties".
// Keys from Extra are merged in unless the payload type models them.
func (w Widget) MarshalJSON() ([]byte, error) {
	props := w.Props
	if props == nil {
		p, err := newProps(w.Kind)
		if err != nil {
			return nil, err
		}
		props = p
	}
	if props.Kind() != w.Kind {
		return nil, fmt.Errorf("widget %s: kind %q does not match payload %q", w.ID, w.Kind, props.Kind())
	}

	raw, err := encodeProps(props, w.Extra)
	if err != nil {
		return nil, fmt.Errorf("widget %s: %w", w.ID, err)
	}
	return json.Marshal(wireWidget{
		ID:         w.ID,
		Type:       w.Kind,
		Page:       w.Page,
		Position:   w.Position,
		Style:      w.Style,
		Properties: raw,
	})
}

// UnmarshalJSON decodes a widget, typing the properties by its kind.
func (w *Widget) UnmarshalJSON(data []byte) error {
	var in wireWidget
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	props, extra, err := decodeProps(in.Type, in.Properties)
	if err != nil {
		if in.ID != "" {
			return fmt.Errorf("widget %s: %w", in.ID, err)
		}
		return err
	}
	*w = Widget{
		ID:       in.ID,
		Kind:     in.Type,
		Page:     in.Page,
		Position: in.Position,
		Style:    in.Style,
		Props:    props,
		Extra:    extra,
	}
	return nil
}

func encodeProps(p Props, extra map[string]json.RawMessage) (json.RawMessage, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode properties: %w", err)
	}
	if len(extra) == 0 {
		if string(data) == "{}" {
			return nil, nil
		}
		return data, nil
	}

	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, fmt.Errorf("encode properties: %w", err)
	}
	known := propKeys(reflect.TypeOf(p))
	for k, v := range extra {
		if _, ok := known[k]; ok {
			continue
		}
		merged[k] = v
	}
	return json.Marshal(merged)
}

func decodeProps(k Kind, raw json.RawMessage) (Props, map[string]json.RawMessage, error) {
	zero, err := newProps(k)
	if err != nil {
		return nil, nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return zero, nil, nil
	}

	t := reflect.TypeOf(zero)
	ptr := reflect.New(t)
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		return nil, nil, fmt.Errorf("decode %s properties: %w", k, err)
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, nil, fmt.Errorf("decode %s properties: %w", k, err)
	}
	known := propKeys(t)
	var extra map[string]json.RawMessage
	for key, v := range all {
		if _, ok := known[key]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[key] = v
	}
	return ptr.Elem().Interface().(Props), extra, nil
}

// propKeys returns the JSON keys declared by a payload struct.
func propKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
	}
	return keys
}
