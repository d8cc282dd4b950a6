package widget

import "slices"

// Props is the kind-specific payload of a widget.
//
// Every implementation declares the numeric attributes the engine reads through
// Fields and rebuilds itself through MapFields; the field order returned by
// Fields is the order MapFields consumes. Attributes that are not scale or
// constraint sensitive are plain struct fields and pass through untouched.
type Props interface {
	Kind() Kind
	Fields() []Field
	MapFields(fn func(Field) float64) Props
	Clone() Props
}

// =============================================================================
// Text
// =============================================================================

// TextProps is a static text block. Font size lives in Style.
type TextProps struct {
	Text string `json:"text,omitempty"`
	Wrap bool   `json:"wrap,omitempty"`
}

func (TextProps) Kind() Kind                           { return KindText }
func (TextProps) Fields() []Field                      { return nil }
func (p TextProps) MapFields(func(Field) float64) Props { return p }
func (p TextProps) Clone() Props                       { return p }

// =============================================================================
// Checkbox
// =============================================================================

// CheckboxProps is a tickable square with an optional label.
type CheckboxProps struct {
	Label   string  `json:"label,omitempty"`
	BoxSize float64 `json:"box_size,omitempty"`
	Checked bool    `json:"checked,omitempty"`
}

func (CheckboxProps) Kind() Kind { return KindCheckbox }

func (p CheckboxProps) Fields() []Field {
	return []Field{
		{Name: "box_size", Label: "box size", Value: p.BoxSize, Axis: AxisMin, Floor: FloorFont, Precision: precisionLength},
	}
}

func (p CheckboxProps) MapFields(fn func(Field) float64) Props {
	f := p.Fields()
	p.BoxSize = fn(f[0])
	return p
}

func (p CheckboxProps) Clone() Props { return p }

// =============================================================================
// Divider
// =============================================================================

// DividerProps is a single rule. Its stroke is Style.LineWidth.
type DividerProps struct {
	Orientation string `json:"orientation,omitempty"` // horizontal (default) or vertical
	Dashed      bool   `json:"dashed,omitempty"`
}

func (DividerProps) Kind() Kind                           { return KindDivider }
func (DividerProps) Fields() []Field                      { return nil }
func (p DividerProps) MapFields(func(Field) float64) Props { return p }
func (p DividerProps) Clone() Props                       { return p }

// =============================================================================
// Lines
// =============================================================================

// LinesProps is a block of ruled writing lines.
type LinesProps struct {
	LineSpacing   float64 `json:"line_spacing,omitempty"`
	LineThickness float64 `json:"line_thickness,omitempty"`
	LineStyle     string  `json:"line_style,omitempty"`
}

func (LinesProps) Kind() Kind { return KindLines }

func (p LinesProps) Fields() []Field {
	return []Field{
		{Name: "line_spacing", Label: "line spacing", Value: p.LineSpacing, Axis: AxisY, Floor: FloorFont, Precision: precisionLength},
		{Name: "line_thickness", Label: "line thickness", Value: p.LineThickness, Axis: AxisMin, Floor: FloorStroke, Precision: precisionStroke},
	}
}

func (p LinesProps) MapFields(fn func(Field) float64) Props {
	f := p.Fields()
	p.LineSpacing = fn(f[0])
	p.LineThickness = fn(f[1])
	return p
}

func (p LinesProps) Clone() Props { return p }

// =============================================================================
// Dot grid
// =============================================================================

// DotGridProps is a field of evenly spaced dots.
type DotGridProps struct {
	Spacing float64 `json:"spacing,omitempty"`
	DotSize float64 `json:"dot_size,omitempty"`
}

func (DotGridProps) Kind() Kind { return KindDotGrid }

func (p DotGridProps) Fields() []Field {
	return []Field{
		{Name: "spacing", Label: "dot spacing", Value: p.Spacing, Axis: AxisMin, Floor: FloorNone, Precision: precisionLength},
		{Name: "dot_size", Label: "dot size", Value: p.DotSize, Axis: AxisMin, Floor: FloorStroke, Precision: precisionStroke},
	}
}

func (p DotGridProps) MapFields(fn func(Field) float64) Props {
	f := p.Fields()
	p.Spacing = fn(f[0])
	p.DotSize = fn(f[1])
	return p
}

func (p DotGridProps) Clone() Props { return p }

// =============================================================================
// Grid
// =============================================================================

// GridProps is a square grid. Its stroke is Style.LineWidth.
type GridProps struct {
	CellSize float64 `json:"cell_size,omitempty"`
}

func (GridProps) Kind() Kind { return KindGrid }

func (p GridProps) Fields() []Field {
	return []Field{
		{Name: "cell_size", Label: "grid cell size", Value: p.CellSize, Axis: AxisMin, Floor: FloorNone, Precision: precisionLength},
	}
}

func (p GridProps) MapFields(fn func(Field) float64) Props {
	f := p.Fields()
	p.CellSize = fn(f[0])
	return p
}

func (p GridProps) Clone() Props { return p }

// =============================================================================
// Calendar
// =============================================================================

// CalendarProps is a month grid. When LinkDays is set each day cell is a tap
// target and its minimum size is bounded by the touch floor instead of the font floor.
type CalendarProps struct {
	Year            int     `json:"year,omitempty"`
	Month           int     `json:"month,omitempty"`
	FirstDayOfWeek  int     `json:"first_day_of_week,omitempty"`
	CellMinSize     float64 `json:"cell_min_size,omitempty"`
	ShowWeekNumbers bool    `json:"show_week_numbers,omitempty"`
	LinkDays        bool    `json:"link_days,omitempty"`
}

func (CalendarProps) Kind() Kind { return KindCalendar }

func (p CalendarProps) Fields() []Field {
	floor := FloorFont
	if p.LinkDays {
		floor = FloorTouch
	}
	return []Field{
		{Name: "cell_min_size", Label: "calendar cell size", Value: p.CellMinSize, Axis: AxisMin, Floor: floor, Precision: precisionLength},
	}
}

func (p CalendarProps) MapFields(fn func(Field) float64) Props {
	f := p.Fields()
	p.CellMinSize = fn(f[0])
	return p
}

func (p CalendarProps) Clone() Props { return p }

// =============================================================================
// Image
// =============================================================================

// ImageProps references an image asset.
type ImageProps struct {
	Src string `json:"src,omitempty"`
	Fit string `json:"fit,omitempty"` // contain (default), cover, fill
}

func (ImageProps) Kind() Kind                           { return KindImage }
func (ImageProps) Fields() []Field                      { return nil }
func (p ImageProps) MapFields(func(Field) float64) Props { return p }
func (p ImageProps) Clone() Props                       { return p }

// =============================================================================
// Link list
// =============================================================================

// LinkItem is one entry of a link list.
type LinkItem struct {
	Label      string `json:"label"`
	TargetPage int    `json:"target_page,omitempty"`
	AnchorID   string `json:"anchor_id,omitempty"`
}

// LinkListProps is a vertical list of tappable links.
type LinkListProps struct {
	Items      []LinkItem `json:"items,omitempty"`
	ItemHeight float64    `json:"item_height,omitempty"`
	Columns    int        `json:"columns,omitempty"`
}

func (LinkListProps) Kind() Kind { return KindLinkList }

func (p LinkListProps) Fields() []Field {
	return []Field{
		{Name: "item_height", Label: "link item height", Value: p.ItemHeight, Axis: AxisY, Floor: FloorTouch, Precision: precisionLength},
	}
}

func (p LinkListProps) MapFields(fn func(Field) float64) Props {
	f := p.Fields()
	p.ItemHeight = fn(f[0])
	p.Items = slices.Clone(p.Items)
	return p
}

func (p LinkListProps) Clone() Props {
	p.Items = slices.Clone(p.Items)
	return p
}

// =============================================================================
// Anchor
// =============================================================================

// AnchorProps marks a link destination. It has no visible geometry of its own.
type AnchorProps struct {
	Name string `json:"name,omitempty"`
}

func (AnchorProps) Kind() Kind                           { return KindAnchor }
func (AnchorProps) Fields() []Field                      { return nil }
func (p AnchorProps) MapFields(func(Field) float64) Props { return p }
func (p AnchorProps) Clone() Props                       { return p }

// =============================================================================
// Tap zone
// =============================================================================

// TapZoneProps is an invisible touch area bound to an action.
type TapZoneProps struct {
	Action     string `json:"action,omitempty"` // goto_page, next_page, prev_page
	TargetPage int    `json:"target_page,omitempty"`
}

func (TapZoneProps) Kind() Kind                           { return KindTapZone }
func (TapZoneProps) Fields() []Field                      { return nil }
func (p TapZoneProps) MapFields(func(Field) float64) Props { return p }
func (p TapZoneProps) Clone() Props                       { return p }

// =============================================================================
// Internal link
// =============================================================================

// InternalLinkProps is visible link text pointing at another page or anchor.
type InternalLinkProps struct {
	Label      string `json:"label,omitempty"`
	TargetPage int    `json:"target_page,omitempty"`
	AnchorID   string `json:"anchor_id,omitempty"`
}

func (InternalLinkProps) Kind() Kind                           { return KindInternalLink }
func (InternalLinkProps) Fields() []Field                      { return nil }
func (p InternalLinkProps) MapFields(func(Field) float64) Props { return p }
func (p InternalLinkProps) Clone() Props                       { return p }

// =============================================================================
// Table
// =============================================================================

// TableProps is a simple rows × columns table.
type TableProps struct {
	Rows      int        `json:"rows,omitempty"`
	Columns   int        `json:"columns,omitempty"`
	RowHeight float64    `json:"row_height,omitempty"`
	Header    bool       `json:"header,omitempty"`
	Cells     [][]string `json:"cells,omitempty"`
}

func (TableProps) Kind() Kind { return KindTable }

func (p TableProps) Fields() []Field {
	return []Field{
		{Name: "row_height", Label: "table row height", Value: p.RowHeight, Axis: AxisY, Floor: FloorFont, Precision: precisionLength},
	}
}

func (p TableProps) MapFields(fn func(Field) float64) Props {
	f := p.Fields()
	p.RowHeight = fn(f[0])
	p.Cells = cloneCells(p.Cells)
	return p
}

func (p TableProps) Clone() Props {
	p.Cells = cloneCells(p.Cells)
	return p
}

func cloneCells(cells [][]string) [][]string {
	if cells == nil {
		return nil
	}
	out := make([][]string, len(cells))
	for i, row := range cells {
		out[i] = slices.Clone(row)
	}
	return out
}

// =============================================================================
// Box
// =============================================================================

// BoxProps is a rectangle with an optional fill. Its border is Style.LineWidth.
type BoxProps struct {
	Fill         string  `json:"fill,omitempty"`
	CornerRadius float64 `json:"corner_radius,omitempty"`
}

func (BoxProps) Kind() Kind { return KindBox }

func (p BoxProps) Fields() []Field {
	return []Field{
		{Name: "corner_radius", Label: "corner radius", Value: p.CornerRadius, Axis: AxisMin, Floor: FloorNone, Precision: precisionLength},
	}
}

func (p BoxProps) MapFields(fn func(Field) float64) Props {
	f := p.Fields()
	p.CornerRadius = fn(f[0])
	return p
}

func (p BoxProps) Clone() Props { return p }

// Compile-time checks that every kind implements Props.
var (
	_ Props = TextProps{}
	_ Props = CheckboxProps{}
	_ Props = DividerProps{}
	_ Props = LinesProps{}
	_ Props = DotGridProps{}
	_ Props = GridProps{}
	_ Props = CalendarProps{}
	_ Props = ImageProps{}
	_ Props = LinkListProps{}
	_ Props = AnchorProps{}
	_ Props = TapZoneProps{}
	_ Props = InternalLinkProps{}
	_ Props = TableProps{}
	_ Props = BoxProps{}
)
