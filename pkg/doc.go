// Package pkg provides the core libraries for Inkframe page layout.
//
// # Overview
//
// Inkframe edits multi-page templates for e-ink tablets and print: pages of
// positioned widgets (text, checkboxes, calendars, ruled lines, tap zones)
// that share master pages. The pkg directory is organized into four areas:
//
//  1. Model - [geom], [widget], [compose] and [template] describe canvases,
//     widgets, master pages and the template file format.
//  2. Layout - [snap], [constraints] and [rescale] implement snapping,
//     device limit checks and rescaling.
//  3. Output - [preview] renders proof sheets; [device] holds the profiles
//     that set the limits.
//  4. Infrastructure - [pipeline], [cache], [config], [observability],
//     [errors] and [buildinfo].
//
// # Architecture
//
// The typical data flow through a rescale:
//
//	template.json + device profile
//	         ↓
//	    [rescale] package (content bounds → scale, Preview plan)
//	         ↓
//	    [constraints] package (warnings at the computed scale)
//	         ↓
//	    [rescale] package (Apply, optionally raising values to the floors)
//	         ↓
//	    template.json for the new canvas
//
// # Quick Start
//
// Rescale a template to another device:
//
//	import (
//	    "github.com/matzehuels/inkframe/pkg/device"
//	    "github.com/matzehuels/inkframe/pkg/rescale"
//	    "github.com/matzehuels/inkframe/pkg/template"
//	)
//
//	t, _ := template.ReadFile("planner.json")
//	p, _ := device.NewRegistry().Lookup("kindle-scribe")
//
//	ws := t.AllWidgets()
//	plan, _ := rescale.Preview(ws, p.Width, p.Height, rescale.Proportional, p.Constraints)
//	for _, w := range plan.Warnings {
//	    fmt.Println(w)
//	}
//	scaled, _ := rescale.Apply(ws, plan.Scale, true, p.Constraints)
//
// Most callers go through [pipeline.Runner], which resolves device profiles,
// caches plans and previews, and calls the observability hooks.
//
// # Testing
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/snap/...         # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/geom
// [widget]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/widget
// [compose]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/compose
// [template]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/template
// [snap]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/snap
// [constraints]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/constraints
// [rescale]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/rescale
// [preview]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/preview
// [device]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/device
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/inkframe/pkg/buildinfo
package pkg
