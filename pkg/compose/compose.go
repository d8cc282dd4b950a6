package compose

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/widget"
)

// Master is a reusable, page-less collection of widgets.
type Master struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Widgets []widget.Widget `json:"widgets"`
}

// Clone returns a deep copy of m.
func (m Master) Clone() Master {
	m.Widgets = cloneWidgets(m.Widgets)
	return m
}

// Assignment maps a page to its master. A page has at most one.
type Assignment struct {
	Page     int    `json:"page"`
	MasterID string `json:"master_id"`
}

// EffectiveWidgets returns the widgets displayed on page.
//
// If page has an assignment to an existing master, that master's widgets
// come first, each copied onto page, followed by the page-scoped widgets of
// page. A missing assignment or one naming a deleted master yields the page
// widgets alone. A page widget whose ID matches a master widget replaces it.
// Inputs are never modified.
func EffectiveWidgets(page int, masters []Master, assignments []Assignment, pageWidgets []widget.Widget) []widget.Widget {
	var own []widget.Widget
	ids := make(map[string]bool)
	for _, w := range pageWidgets {
		if !w.OnPage(page) || ids[w.ID] {
			continue
		}
		ids[w.ID] = true
		own = append(own, w.Clone())
	}

	m, ok := assignedMaster(page, masters, assignments)
	if !ok {
		return own
	}

	out := make([]widget.Widget, 0, len(m.Widgets)+len(own))
	for _, w := range m.Widgets {
		if ids[w.ID] {
			continue
		}
		ids[w.ID] = true
		out = append(out, w.WithPage(page))
	}
	return append(out, own...)
}

func assignedMaster(page int, masters []Master, assignments []Assignment) (Master, bool) {
	i := slices.IndexFunc(assignments, func(a Assignment) bool { return a.Page == page })
	if i < 0 {
		return Master{}, false
	}
	j := slices.IndexFunc(masters, func(m Master) bool { return m.ID == assignments[i].MasterID })
	if j < 0 {
		return Master{}, false
	}
	return masters[j], true
}

// =============================================================================
// Composition
// =============================================================================

// Composition is the widget, master and assignment state of a template.
//
// Operations return a new Composition and never modify the receiver. On
// error the receiver is the only valid state.
type Composition struct {
	Widgets     []widget.Widget // page-scoped widgets
	Masters     []Master
	Assignments []Assignment
}

// Clone returns a deep copy of c.
func (c Composition) Clone() Composition {
	out := Composition{
		Widgets:     cloneWidgets(c.Widgets),
		Assignments: slices.Clone(c.Assignments),
	}
	if c.Masters != nil {
		out.Masters = make([]Master, len(c.Masters))
		for i, m := range c.Masters {
			out.Masters[i] = m.Clone()
		}
	}
	return out
}

// Effective returns the widgets displayed on page.
func (c Composition) Effective(page int) []widget.Widget {
	return EffectiveWidgets(page, c.Masters, c.Assignments, c.Widgets)
}

// Master returns the master with the given ID.
func (c Composition) Master(id string) (Master, bool) {
	i := c.masterIndex(id)
	if i < 0 {
		return Master{}, false
	}
	return c.Masters[i], true
}

// AssignmentFor returns the assignment of page, if any.
func (c Composition) AssignmentFor(page int) (Assignment, bool) {
	i := slices.IndexFunc(c.Assignments, func(a Assignment) bool { return a.Page == page })
	if i < 0 {
		return Assignment{}, false
	}
	return c.Assignments[i], true
}

// Pages returns every page number that has widgets or an assignment, sorted.
func (c Composition) Pages() []int {
	var pages []int
	for _, w := range c.Widgets {
		if w.Page != nil {
			pages = append(pages, *w.Page)
		}
	}
	for _, a := range c.Assignments {
		pages = append(pages, a.Page)
	}
	slices.Sort(pages)
	return slices.Compact(pages)
}

// AllWidgets returns every widget in every scope: page widgets first, then
// master widgets in master order.
func (c Composition) AllWidgets() []widget.Widget {
	out := slices.Clone(c.Widgets)
	for _, m := range c.Masters {
		out = append(out, m.Widgets...)
	}
	return out
}

// MoveToMaster moves a widget into master masterID. The widget may come from
// page scope or from another master; its page number is cleared.
func (c Composition) MoveToMaster(widgetID, masterID string) (Composition, error) {
	mi := c.masterIndex(masterID)
	if mi < 0 {
		return c, masterNotFound(masterID)
	}

	out := c.Clone()
	var moved widget.Widget
	if wi := widget.Find(out.Widgets, widgetID); wi >= 0 {
		moved = out.Widgets[wi]
		out.Widgets = slices.Delete(out.Widgets, wi, wi+1)
	} else {
		src, wi := out.findInMasters(widgetID)
		if src < 0 {
			return c, widgetNotFound(widgetID)
		}
		if src == mi {
			return c, errors.New(errors.ErrCodeScopeConflict, "widget %q is already in master %q", widgetID, masterID)
		}
		moved = out.Masters[src].Widgets[wi]
		out.Masters[src].Widgets = slices.Delete(out.Masters[src].Widgets, wi, wi+1)
	}

	out.Masters[mi].Widgets = append(out.Masters[mi].Widgets, moved.WithoutPage())
	return out, nil
}

// DetachToPage moves a widget out of whichever master holds it onto page.
func (c Composition) DetachToPage(widgetID string, page int) (Composition, error) {
	if err := errors.ValidatePage(page, 0); err != nil {
		return c, err
	}
	if widget.Find(c.Widgets, widgetID) >= 0 {
		return c, errors.New(errors.ErrCodeScopeConflict, "widget %q is already page-scoped", widgetID)
	}

	out := c.Clone()
	mi, wi := out.findInMasters(widgetID)
	if mi < 0 {
		return c, widgetNotFound(widgetID)
	}
	w := out.Masters[mi].Widgets[wi]
	out.Masters[mi].Widgets = slices.Delete(out.Masters[mi].Widgets, wi, wi+1)
	out.Widgets = append(out.Widgets, w.WithPage(page))
	return out, nil
}

// DeleteMaster removes a master and every assignment that references it.
// Those pages revert to having no master.
func (c Composition) DeleteMaster(masterID string) (Composition, error) {
	mi := c.masterIndex(masterID)
	if mi < 0 {
		return c, masterNotFound(masterID)
	}
	out := c.Clone()
	out.Masters = slices.Delete(out.Masters, mi, mi+1)
	out.Assignments = slices.DeleteFunc(out.Assignments, func(a Assignment) bool {
		return a.MasterID == masterID
	})
	return out, nil
}

// AddMaster appends an empty master with a fresh ID and returns that ID.
func (c Composition) AddMaster(name string) (Composition, string, error) {
	if err := errors.ValidateName(name); err != nil {
		return c, "", err
	}
	out := c.Clone()
	id := uuid.NewString()
	out.Masters = append(out.Masters, Master{ID: id, Name: name, Widgets: []widget.Widget{}})
	return out, id, nil
}

// RenameMaster changes a master's display name.
func (c Composition) RenameMaster(masterID, name string) (Composition, error) {
	if err := errors.ValidateName(name); err != nil {
		return c, err
	}
	mi := c.masterIndex(masterID)
	if mi < 0 {
		return c, masterNotFound(masterID)
	}
	out := c.Clone()
	out.Masters[mi].Name = name
	return out, nil
}

// Assign sets the master of page, replacing any existing assignment.
func (c Composition) Assign(page int, masterID string) (Composition, error) {
	if err := errors.ValidatePage(page, 0); err != nil {
		return c, err
	}
	if c.masterIndex(masterID) < 0 {
		return c, masterNotFound(masterID)
	}
	out := c.Clone()
	if i := slices.IndexFunc(out.Assignments, func(a Assignment) bool { return a.Page == page }); i >= 0 {
		out.Assignments[i].MasterID = masterID
		return out, nil
	}
	out.Assignments = append(out.Assignments, Assignment{Page: page, MasterID: masterID})
	slices.SortFunc(out.Assignments, func(a, b Assignment) int { return a.Page - b.Page })
	return out, nil
}

// Unassign removes the assignment of page. It is a no-op for pages without one.
func (c Composition) Unassign(page int) Composition {
	out := c.Clone()
	out.Assignments = slices.DeleteFunc(out.Assignments, func(a Assignment) bool { return a.Page == page })
	return out
}

// Check verifies the structural invariants: page widgets carry a page,
// master widgets do not, widget and master IDs are unique, and each page has
// at most one assignment. Dangling assignments are allowed.
func (c Composition) Check() error {
	seen := make(map[string]string)
	claim := func(id, scope string) error {
		if err := errors.ValidateID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", scope)
		}
		if prev, ok := seen[id]; ok {
			return errors.New(errors.ErrCodeScopeConflict, "widget %q appears in %s and %s", id, prev, scope)
		}
		seen[id] = scope
		return nil
	}

	for _, w := range c.Widgets {
		if w.Page == nil {
			return errors.New(errors.ErrCodeScopeConflict, "page widget %q has no page", w.ID)
		}
		if err := claim(w.ID, "page scope"); err != nil {
			return err
		}
	}

	masters := make(map[string]bool)
	for _, m := range c.Masters {
		if err := errors.ValidateID(m.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "master %q", m.Name)
		}
		if masters[m.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate master id %q", m.ID)
		}
		masters[m.ID] = true
		for _, w := range m.Widgets {
			if w.Page != nil {
				return errors.New(errors.ErrCodeScopeConflict, "master %q widget %q carries page %d", m.ID, w.ID, *w.Page)
			}
			if err := claim(w.ID, "master "+m.ID); err != nil {
				return err
			}
		}
	}

	pages := make(map[int]bool)
	for _, a := range c.Assignments {
		if pages[a.Page] {
			return errors.New(errors.ErrCodeInvalidInput, "page %d has more than one master assignment", a.Page)
		}
		pages[a.Page] = true
	}
	return nil
}

func (c Composition) masterIndex(id string) int {
	return slices.IndexFunc(c.Masters, func(m Master) bool { return m.ID == id })
}

// findInMasters returns the master and widget index of widgetID, or -1, -1.
func (c Composition) findInMasters(widgetID string) (int, int) {
	for mi, m := range c.Masters {
		if wi := widget.Find(m.Widgets, widgetID); wi >= 0 {
			return mi, wi
		}
	}
	return -1, -1
}

func widgetNotFound(id string) error {
	return errors.Wrap(errors.ErrCodeWidgetNotFound, &errors.UnknownError{What: "widget", Name: id}, "widget %q not found", id)
}

func masterNotFound(id string) error {
	return errors.Wrap(errors.ErrCodeMasterNotFound, &errors.UnknownError{What: "master", Name: id}, "master %q not found", id)
}

func cloneWidgets(ws []widget.Widget) []widget.Widget {
	if ws == nil {
		return nil
	}
	out := make([]widget.Widget, len(ws))
	for i, w := range ws {
		out[i] = w.Clone()
	}
	return out
}
