package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inkframe/pkg/compose"
	"github.com/matzehuels/inkframe/pkg/errors"
	"github.com/matzehuels/inkframe/pkg/template"
)

// masterCommand creates the master page management command.
func (c *CLI) masterCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "master",
		Short: "Manage master pages",
		Long: `Manage master pages.

A master holds widgets shared by every page it is assigned to, such as a
header, a page-number footer or a navigation bar. Each page has at most one
master. Masters are addressed by ID or by name when the name is unique.

Commands that change the template write it back in place unless --output is
given.`,
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file (default: overwrite the input)")

	edit := func(use, short string, args cobra.PositionalArgs, fn func(template.Template, []string) (template.Template, string, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runMasterEdit(args[0], output, args[1:], fn)
			},
		}
	}

	cmd.AddCommand(c.masterListCommand())
	cmd.AddCommand(edit("create [template.json] [name]", "Create an empty master",
		cobra.ExactArgs(2), masterCreate))
	cmd.AddCommand(edit("rename [template.json] [master] [name]", "Rename a master",
		cobra.ExactArgs(3), masterRename))
	cmd.AddCommand(edit("assign [template.json] [master] [pages]", "Assign a master to pages (e.g. 1,3-5)",
		cobra.ExactArgs(3), masterAssign))
	cmd.AddCommand(edit("unassign [template.json] [pages]", "Remove the master from pages",
		cobra.ExactArgs(2), masterUnassign))
	cmd.AddCommand(edit("move [template.json] [widget] [master]", "Move a widget into a master",
		cobra.ExactArgs(3), masterMove))
	cmd.AddCommand(edit("detach [template.json] [widget] [page]", "Move a master widget onto a page",
		cobra.ExactArgs(3), masterDetach))
	cmd.AddCommand(edit("delete [template.json] [master]", "Delete a master and its assignments",
		cobra.ExactArgs(2), masterDelete))

	return cmd
}

// masterListCommand creates the "master list" subcommand.
func (c *CLI) masterListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [template.json]",
		Short: "List masters with their widgets and pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTemplate(args[0])
			if err != nil {
				return err
			}
			if len(t.Masters) == 0 {
				printInfo("No masters")
				return nil
			}
			tbl := newTable("ID", "Name", "Widgets", "Pages")
			for _, m := range t.Masters {
				tbl.Row(m.ID, m.Name, strconv.Itoa(len(m.Widgets)), formatPages(assignedPages(t, m.ID)))
			}
			fmt.Println(tbl.Render())
			return nil
		},
	}
}

// runMasterEdit loads the template, applies fn and writes the result.
func (c *CLI) runMasterEdit(input, output string, args []string, fn func(template.Template, []string) (template.Template, string, error)) error {
	t, err := loadTemplate(input)
	if err != nil {
		return err
	}
	out, msg, err := fn(t, args)
	if err != nil {
		return err
	}
	if err := out.Check(); err != nil {
		return fmt.Errorf("result: %w", err)
	}
	path, err := saveTemplate(out, input, output)
	if err != nil {
		return err
	}
	c.Logger.Debug("updated masters", "template", t.Name, "masters", len(out.Masters), "assignments", len(out.PageAssignments))
	printSuccess("%s", msg)
	printFile(path)
	return nil
}

// =============================================================================
// Edits
// =============================================================================

func masterCreate(t template.Template, args []string) (template.Template, string, error) {
	comp, id, err := t.Composition().AddMaster(args[0])
	if err != nil {
		return t, "", err
	}
	return t.WithComposition(comp), fmt.Sprintf("Created master %s (%s)", StyleHighlight.Render(args[0]), id), nil
}

func masterRename(t template.Template, args []string) (template.Template, string, error) {
	id, err := resolveMaster(t, args[0])
	if err != nil {
		return t, "", err
	}
	comp, err := t.Composition().RenameMaster(id, args[1])
	if err != nil {
		return t, "", err
	}
	return t.WithComposition(comp), fmt.Sprintf("Renamed master to %s", StyleHighlight.Render(args[1])), nil
}

func masterAssign(t template.Template, args []string) (template.Template, string, error) {
	id, err := resolveMaster(t, args[0])
	if err != nil {
		return t, "", err
	}
	pages, err := templatePages(t, args[1])
	if err != nil {
		return t, "", err
	}
	comp := t.Composition()
	for _, p := range pages {
		if comp, err = comp.Assign(p, id); err != nil {
			return t, "", err
		}
	}
	return t.WithComposition(comp), fmt.Sprintf("Assigned %s to %s", StyleHighlight.Render(args[0]), formatPages(pages)), nil
}

func masterUnassign(t template.Template, args []string) (template.Template, string, error) {
	pages, err := templatePages(t, args[0])
	if err != nil {
		return t, "", err
	}
	comp := t.Composition()
	for _, p := range pages {
		comp = comp.Unassign(p)
	}
	return t.WithComposition(comp), fmt.Sprintf("Unassigned %s", formatPages(pages)), nil
}

func masterMove(t template.Template, args []string) (template.Template, string, error) {
	id, err := resolveMaster(t, args[1])
	if err != nil {
		return t, "", err
	}
	comp, err := t.Composition().MoveToMaster(args[0], id)
	if err != nil {
		return t, "", err
	}
	return t.WithComposition(comp), fmt.Sprintf("Moved %s into %s", StyleHighlight.Render(args[0]), args[1]), nil
}

func masterDetach(t template.Template, args []string) (template.Template, string, error) {
	page, err := strconv.Atoi(args[1])
	if err != nil {
		return t, "", errors.New(errors.ErrCodeInvalidInput, "invalid page %q", args[1])
	}
	if err := errors.ValidatePage(page, t.PageCount); err != nil {
		return t, "", err
	}
	comp, err := t.Composition().DetachToPage(args[0], page)
	if err != nil {
		return t, "", err
	}
	return t.WithComposition(comp), fmt.Sprintf("Detached %s onto page %d", StyleHighlight.Render(args[0]), page), nil
}

func masterDelete(t template.Template, args []string) (template.Template, string, error) {
	id, err := resolveMaster(t, args[0])
	if err != nil {
		return t, "", err
	}
	pages := assignedPages(t, id)
	comp, err := t.Composition().DeleteMaster(id)
	if err != nil {
		return t, "", err
	}
	msg := fmt.Sprintf("Deleted master %s", StyleHighlight.Render(args[0]))
	if len(pages) > 0 {
		msg += fmt.Sprintf(" (%s now without master)", formatPages(pages))
	}
	return t.WithComposition(comp), msg, nil
}

// =============================================================================
// Helpers
// =============================================================================

// resolveMaster finds a master by ID, then by unique name.
func resolveMaster(t template.Template, ref string) (string, error) {
	var byName []compose.Master
	for _, m := range t.Masters {
		if m.ID == ref {
			return m.ID, nil
		}
		if m.Name == ref {
			byName = append(byName, m)
		}
	}
	switch len(byName) {
	case 1:
		return byName[0].ID, nil
	case 0:
		known := make([]string, 0, len(t.Masters))
		for _, m := range t.Masters {
			known = append(known, m.Name)
		}
		return "", errors.Wrap(errors.ErrCodeMasterNotFound,
			&errors.UnknownError{What: "master", Name: ref, Known: known},
			"unknown master %q", ref)
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "%d masters are named %q, use the ID", len(byName), ref)
}

// templatePages parses a page list and checks it against t.
func templatePages(t template.Template, s string) ([]int, error) {
	pages, err := parsePages(s)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no pages given")
	}
	for _, p := range pages {
		if err := errors.ValidatePage(p, t.PageCount); err != nil {
			return nil, err
		}
	}
	return pages, nil
}

// assignedPages returns the pages assigned to master id.
func assignedPages(t template.Template, id string) []int {
	var pages []int
	for _, a := range t.PageAssignments {
		if a.MasterID == id {
			pages = append(pages, a.Page)
		}
	}
	return pages
}

// formatPages formats a page list, "—" when empty.
func formatPages(pages []int) string {
	if len(pages) == 0 {
		return "—"
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return plural(len(pages), "page ", "pages ") + strings.Join(parts, ",")
}
