// SPDX-License-Identifier: Unlicense OR MIT

// Package help implements the cached keybinding-help reference widget
// described in spec §3.5/§4.8: a short inline form and a full vertical
// form, reconciled against a previous render through a dirty-rect cache so
// unaffected slots of the target frame are never rewritten.
package help

import (
	"github.com/nightisyang/frankentui-sub000/cell"
)

// Entry is one keybinding line: a key label, its description, whether it is
// currently enabled, and an optional grouping category.
type Entry struct {
	Key      string
	Desc     string
	Enabled  bool
	Category string
}

func (e Entry) empty() bool { return e.Key == "" && e.Desc == "" }

// Mode selects the widget's display form.
type Mode uint8

const (
	// Short lays entries out inline, separated, with an ellipsis on overflow.
	Short Mode = iota
	// Full lays entries out one per row with an aligned key column.
	Full
)

// KeyFormat controls how a key label is decorated, used by the hints
// variant of this widget.
type KeyFormat uint8

const (
	Plain KeyFormat = iota
	Bracketed
)

// Styles bundles the three style keys the widget paints with.
type Styles struct {
	Key       cell.Style
	Desc      cell.Style
	Separator cell.Style
}

// Widget is the logical, immutable description of one help/hints panel.
type Widget struct {
	Entries     []Entry
	Mode        Mode
	Styles      Styles
	Separator   string
	Ellipsis    string
	KeyFormat   KeyFormat
	ShowContext bool
}

func formatKey(key string, kf KeyFormat) string {
	if kf == Bracketed {
		return "[" + key + "]"
	}
	return key
}
