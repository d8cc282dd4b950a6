// Package constraints checks widgets against the physical limits of a target
// device.
//
// [Validate] takes a proposed scale and a [geom.DeviceConstraints] and
// returns a [Warning] for every scaled attribute that would fall below its
// floor: font sizes and strokes, kind-specific fields such as a checkbox box
// size or a link-list item height, and the bounding box of interactive kinds
// against the minimum touch target. Violations are data, not errors; the
// caller decides whether to accept, auto-fix or abandon the change.
//
// Which floor applies to which attribute is declared by the widget payloads
// themselves (see [widget.Field]), so validation and rescaling stay in step.
package constraints
