// Package snap pulls a moving or resizing widget onto nearby reference lines.
//
// Each axis is resolved on its own under a strict priority:
//
//  1. Margin or canvas: the leading or trailing edge within tolerance of the
//     margin-inset boundary snaps onto it. The category is [Margin] when the
//     inset on that side is positive and [CanvasEdge] otherwise.
//  2. Widget: edges and centers of the other targets. The single closest
//     match within tolerance wins; ties prefer the moving leading edge, then
//     the trailing edge, then the center.
//  3. Grid: the leading coordinate is rounded to a multiple of the grid size.
//
// A later step only runs if no earlier step snapped that axis. The result
// carries the category and, for the first two steps, the guide coordinate a
// UI can draw. Resolution holds no state and is cheap enough to call on every
// pointer move.
package snap
