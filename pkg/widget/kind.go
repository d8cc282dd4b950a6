package widget

import "fmt"

// Kind identifies a widget variant. The set is closed: every kind has exactly
// one Props implementation, constructed by newProps.
type Kind string

const (
	KindText         Kind = "text"
	KindCheckbox     Kind = "checkbox"
	KindDivider      Kind = "divider"
	KindLines        Kind = "lines"
	KindDotGrid      Kind = "dot-grid"
	KindGrid         Kind = "grid"
	KindCalendar     Kind = "calendar"
	KindImage        Kind = "image"
	KindLinkList     Kind = "link-list"
	KindAnchor       Kind = "anchor"
	KindTapZone      Kind = "tap-zone"
	KindInternalLink Kind = "internal-link"
	KindTable        Kind = "table"
	KindBox          Kind = "box"
)

// Kinds lists every widget kind in declaration order.
var Kinds = []Kind{
	KindText, KindCheckbox, KindDivider, KindLines, KindDotGrid, KindGrid,
	KindCalendar, KindImage, KindLinkList, KindAnchor, KindTapZone,
	KindInternalLink, KindTable, KindBox,
}

// Interactive reports whether widgets of this kind respond to touch and must
// therefore meet the device's minimum touch target.
func (k Kind) Interactive() bool {
	switch k {
	case KindCheckbox, KindTapZone, KindInternalLink:
		return true
	}
	return false
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, err := newProps(k)
	return err == nil
}

// newProps returns the zero payload for a kind.
func newProps(k Kind) (Props, error) {
	switch k {
	case KindText:
		return TextProps{}, nil
	case KindCheckbox:
		return CheckboxProps{}, nil
	case KindDivider:
		return DividerProps{}, nil
	case KindLines:
		return LinesProps{}, nil
	case KindDotGrid:
		return DotGridProps{}, nil
	case KindGrid:
		return GridProps{}, nil
	case KindCalendar:
		return CalendarProps{}, nil
	case KindImage:
		return ImageProps{}, nil
	case KindLinkList:
		return LinkListProps{}, nil
	case KindAnchor:
		return AnchorProps{}, nil
	case KindTapZone:
		return TapZoneProps{}, nil
	case KindInternalLink:
		return InternalLinkProps{}, nil
	case KindTable:
		return TableProps{}, nil
	case KindBox:
		return BoxProps{}, nil
	}
	return nil, fmt.Errorf("unknown widget kind %q", string(k))
}
