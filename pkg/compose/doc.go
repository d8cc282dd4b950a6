// Package compose resolves what a page shows from masters and page widgets.
//
// A template keeps widgets in two scopes. Page-scoped widgets carry a page
// number. Master-scoped widgets live in a [Master], a named background layer
// that any number of pages can be assigned to. [EffectiveWidgets] merges the
// two for one page: master content first, page content drawn on top.
//
// [Composition] bundles the three collections and offers the structural
// edits a layout editor needs, such as moving a widget between scopes or
// deleting a master. Every edit returns a new Composition; a widget is never
// in two scopes at once.
package compose
