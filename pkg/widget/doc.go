// Package widget defines the widget data model consumed by the layout engine.
//
// A [Widget] is a positioned element of one [Kind]. Its kind-specific payload
// is a [Props] value; each kind has its own payload type (for example
// [CheckboxProps] or [LinesProps]) so that code touching scale-sensitive or
// constraint-sensitive attributes goes through typed fields instead of an open
// property map.
//
// # Sensitive Fields
//
// Payloads and [Style] expose their numeric, scale-dependent attributes as a
// list of [Field] values. Each field names the scale [Axis] it follows and the
// device [Floor] it must not fall below. The rescale transformer and the
// constraint validator both consume this list, so a new kind only has to
// declare its fields once:
//
//	for _, f := range w.Fields() {
//	    if f.Set() {
//	        fmt.Println(f.Label, f.Scaled(sx, sy))
//	    }
//	}
//
// # Scope
//
// A widget with a nil Page lives in a master; otherwise it belongs to that
// page. [Widget.WithPage] and [Widget.WithoutPage] return copies for moving
// between scopes; no method mutates its receiver.
//
// # Serialization
//
// Widgets encode as JSON objects with a "type" discriminator and a
// "properties" object. Property keys a payload type does not declare are kept
// in Widget.Extra and written back unchanged.
package widget
