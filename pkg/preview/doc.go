// Package preview draws wireframe proof sheets of composed pages.
//
// A proof sheet is not the final PDF output. It shows the canvas, the safe
// area, every widget's box with its kind and ID, and optionally the constraint
// warnings and snap guides for the page, so a layout can be reviewed from the
// terminal or in a browser before it is sent to the renderer.
//
// # Formats
//
// [RenderSVG] writes a scalable wireframe, [RenderPNG] rasterizes the same
// drawing (optionally quantized to the gray levels of an e-ink panel), and
// [RenderJSON] dumps the page model itself:
//
//	page := preview.NewPage(1, tmpl.Canvas, tmpl.Page(1))
//	page.Warnings = constraints.Validate(page.Widgets, 1, 1, profile.Constraints)
//	svg := preview.RenderSVG(page, preview.WithWarnings(), preview.WithLabels())
//
// Master widgets are drawn dashed and in a lighter ink so that the page's own
// widgets stand out.
package preview
