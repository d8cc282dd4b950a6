package template

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/inkframe/pkg/compose"
	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/widget"
)

// Template is a multi-page layout document.
//
// Widgets holds the page-scoped widgets; master-scoped widgets live inside
// Masters. PageAssignments maps pages to masters.
type Template struct {
	Name            string               `json:"name"`
	Device          string               `json:"device,omitempty"`
	PageCount       int                  `json:"page_count"`
	Canvas          geom.Canvas          `json:"canvas"`
	Widgets         []widget.Widget      `json:"widgets"`
	Masters         []compose.Master     `json:"masters,omitempty"`
	PageAssignments []compose.Assignment `json:"page_assignments,omitempty"`
}

// Composition returns the widget, master and assignment state of t.
func (t Template) Composition() compose.Composition {
	return compose.Composition{
		Widgets:     t.Widgets,
		Masters:     t.Masters,
		Assignments: t.PageAssignments,
	}.Clone()
}

// WithComposition returns a copy of t holding c.
func (t Template) WithComposition(c compose.Composition) Template {
	c = c.Clone()
	t.Widgets = c.Widgets
	t.Masters = c.Masters
	t.PageAssignments = c.Assignments
	return t
}

// Page returns the effective widgets of page n.
func (t Template) Page(n int) []widget.Widget {
	return compose.EffectiveWidgets(n, t.Masters, t.PageAssignments, t.Widgets)
}

// AllWidgets returns every widget in every scope.
func (t Template) AllWidgets() []widget.Widget {
	return compose.Composition{Widgets: t.Widgets, Masters: t.Masters}.AllWidgets()
}

// MapWidgets returns a copy of t with fn applied to every widget in every
// scope. Widgets keep their scope and order.
func (t Template) MapWidgets(fn func(widget.Widget) widget.Widget) Template {
	out := t.WithComposition(t.Composition())
	for i, w := range out.Widgets {
		out.Widgets[i] = fn(w)
	}
	for i := range out.Masters {
		for j, w := range out.Masters[i].Widgets {
			out.Masters[i].Widgets[j] = fn(w)
		}
	}
	return out
}

// SetPosition returns a copy of t with widget id on page n moved to pos.
// A page widget takes precedence; otherwise the widget is looked up in the
// master assigned to page n, and moving it moves it on every page that
// master is assigned to.
func (t Template) SetPosition(id string, n int, pos geom.Position) (Template, error) {
	if !pos.Valid() {
		return t, errors.New(errors.ErrCodeInvalidInput, "invalid position %v", pos)
	}
	out := t.WithComposition(t.Composition())
	for i, w := range out.Widgets {
		if w.ID == id && w.OnPage(n) {
			out.Widgets[i].Position = pos
			return out, nil
		}
	}

	c := out.Composition()
	if a, ok := c.AssignmentFor(n); ok {
		for i := range out.Masters {
			if out.Masters[i].ID != a.MasterID {
				continue
			}
			for j, w := range out.Masters[i].Widgets {
				if w.ID == id {
					out.Masters[i].Widgets[j].Position = pos
					return out, nil
				}
			}
		}
	}
	return t, errors.Wrap(errors.ErrCodeWidgetNotFound, &errors.UnknownError{What: "widget", Name: id},
		"widget %q not found on page %d", id, n)
}

// Check verifies t: a valid canvas and page count, positive widget sizes,
// pages within range, and the composition invariants. Assignments naming a
// missing master are allowed.
func (t Template) Check() error {
	if !t.Canvas.Valid() {
		return errors.New(errors.ErrCodeInvalidTemplate, "invalid canvas %v × %v with margins %v",
			t.Canvas.Width, t.Canvas.Height, t.Canvas.Margins)
	}
	if t.PageCount < 1 {
		return errors.New(errors.ErrCodeInvalidTemplate, "page_count must be at least 1, got %d", t.PageCount)
	}

	for _, w := range t.AllWidgets() {
		if !w.Position.Valid() {
			return errors.New(errors.ErrCodeInvalidTemplate, "widget %q has invalid position %v", w.ID, w.Position)
		}
		if w.Page != nil {
			if err := errors.ValidatePage(*w.Page, t.PageCount); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidTemplate, err, "widget %q", w.ID)
			}
		}
	}
	for _, a := range t.PageAssignments {
		if err := errors.ValidatePage(a.Page, t.PageCount); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTemplate, err, "assignment of master %q", a.MasterID)
		}
	}

	if err := t.Composition().Check(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTemplate, err, "invalid composition")
	}
	return nil
}

// Normalize returns a copy of t in which every widget and master without an
// ID has been given a fresh one, with the number of IDs assigned.
func (t Template) Normalize() (Template, int) {
	n := 0
	fresh := func(id string) string {
		if id != "" {
			return id
		}
		n++
		return uuid.NewString()
	}

	out := t.MapWidgets(func(w widget.Widget) widget.Widget {
		w.ID = fresh(w.ID)
		return w
	})
	for i := range out.Masters {
		out.Masters[i].ID = fresh(out.Masters[i].ID)
	}
	return out, n
}

// Stats summarizes the contents of a template.
type Stats struct {
	Pages         int
	PageWidgets   int
	MasterWidgets int
	Masters       int
	Assigned      int
	ByKind        map[widget.Kind]int
}

// Stats counts the widgets and masters of t.
func (t Template) Stats() Stats {
	s := Stats{
		Pages:       t.PageCount,
		PageWidgets: len(t.Widgets),
		Masters:     len(t.Masters),
		Assigned:    len(t.PageAssignments),
		ByKind:      make(map[widget.Kind]int),
	}
	for _, m := range t.Masters {
		s.MasterWidgets += len(m.Widgets)
	}
	for _, w := range t.AllWidgets() {
		s.ByKind[w.Kind]++
	}
	return s
}

// Kinds returns the kinds present in s, in declaration order.
func (s Stats) Kinds() []widget.Kind {
	var out []widget.Kind
	for _, k := range widget.Kinds {
		if s.ByKind[k] > 0 {
			out = append(out, k)
		}
	}
	return out
}

func (s Stats) String() string {
	parts := make([]string, 0, len(s.ByKind))
	for _, k := range s.Kinds() {
		parts = append(parts, fmt.Sprintf("%s=%d", k, s.ByKind[k]))
	}
	return fmt.Sprintf("%d pages, %d page widgets, %d masters (%d widgets) %v",
		s.Pages, s.PageWidgets, s.Masters, s.MasterWidgets, parts)
}

// PageNumbers returns 1..PageCount.
func (t Template) PageNumbers() []int {
	out := make([]int, 0, t.PageCount)
	for p := 1; p <= t.PageCount; p++ {
		out = append(out, p)
	}
	return out
}

// HasPage reports whether n is a page of t.
func (t Template) HasPage(n int) bool {
	return n >= 1 && n <= t.PageCount
}
