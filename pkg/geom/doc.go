// Package geom provides the value types shared by the layout engine.
//
// All lengths are page points (1/72 inch) measured from the top-left corner of
// the canvas. The types are plain values: every method returns a new value and
// nothing in this package holds state.
//
// # Core Types
//
//   - [Position]: a widget rectangle (x, y, width, height)
//   - [Canvas]: page size plus safe [Margins]
//   - [Bounds]: bounding box over a set of positions
//   - [DeviceConstraints]: minimum font, stroke and touch sizes of a device
//
// # Rounding
//
// Engine outputs are rounded with [Round] so results stay comparable between
// runs: one decimal place for lengths and two for sub-point strokes.
package geom
