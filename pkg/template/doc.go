// Package template holds the multi-page layout document the engine works on.
//
// A [Template] carries the canvas, the page count, the page-scoped widgets,
// the masters and the page-to-master assignments. It is read from and written
// to JSON:
//
//	t, err := template.ReadFile("planner.json")
//	if err != nil {
//	    return err
//	}
//	if err := t.Check(); err != nil {
//	    return err
//	}
//	for _, w := range t.Page(3) {
//	    fmt.Println(w.ID, w.Kind)
//	}
//
// Property keys a widget kind does not model are preserved across a
// read/write cycle. Editing goes through [Template.Composition] and
// [Template.WithComposition], which hand the scope state to package compose.
package template
