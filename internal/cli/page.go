package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/geom"
	"github.com/matzehuels/inkframe/pkg/template"
)

// pageCommand creates the page command for inspecting composed pages.
func (c *CLI) pageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "page [template.json] [page]",
		Short: "List pages or the effective widgets of one page",
		Long: `List pages or the effective widgets of one page.

Without a page number every page is listed with its master and widget counts.
With a page number the page's effective widgets are listed in draw order:
the master's widgets first, then the page's own.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTemplate(args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				printPages(t)
				return nil
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "invalid page %q", args[1])
			}
			if err := errors.ValidatePage(n, t.PageCount); err != nil {
				return err
			}
			printPage(t, n)
			return nil
		},
	}
}

func printPages(t template.Template) {
	comp := t.Composition()
	tbl := newTable("Page", "Master", "Page widgets", "Effective")
	for _, n := range t.PageNumbers() {
		master := "—"
		if m, ok := masterFor(t, n); ok {
			master = m
		}
		own := 0
		for _, w := range comp.Widgets {
			if w.OnPage(n) {
				own++
			}
		}
		tbl.Row(strconv.Itoa(n), master, strconv.Itoa(own), strconv.Itoa(len(t.Page(n))))
	}
	printInfo("%s", StyleHighlight.Render(t.Name))
	printStats(t.Stats())
	fmt.Println(tbl.Render())
}

func printPage(t template.Template, n int) {
	ws := t.Page(n)
	master, hasMaster := masterFor(t, n)

	tbl := newTable("ID", "Kind", "Scope", "X", "Y", "Width", "Height")
	own := pageWidgetIDs(t, n)
	for _, w := range ws {
		scope := "page"
		if !own[w.ID] && hasMaster {
			scope = master
		}
		p := w.Position
		tbl.Row(w.ID, string(w.Kind), scope, num(p.X), num(p.Y), num(p.Width), num(p.Height))
	}

	title := fmt.Sprintf("Page %d of %d", n, t.PageCount)
	if hasMaster {
		title += " · master " + master
	}
	printInfo("%s", StyleHighlight.Render(title))
	fmt.Println(tbl.Render())
}

// masterFor returns the display name of the master assigned to page n.
func masterFor(t template.Template, n int) (string, bool) {
	comp := t.Composition()
	a, ok := comp.AssignmentFor(n)
	if !ok {
		return "", false
	}
	m, ok := comp.Master(a.MasterID)
	if !ok {
		return "", false
	}
	if m.Name != "" {
		return m.Name, true
	}
	return m.ID, true
}

// pageWidgetIDs returns the IDs of the widgets scoped to page n.
func pageWidgetIDs(t template.Template, n int) map[string]bool {
	ids := make(map[string]bool)
	for _, w := range t.Widgets {
		if w.OnPage(n) {
			ids[w.ID] = true
		}
	}
	return ids
}

func num(v float64) string {
	return strconv.FormatFloat(geom.Round(v, 1), 'f', -1, 64)
}
