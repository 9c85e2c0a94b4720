// Package menu builds the popup menu shown when the running instance is
// triggered. It is toolkit-agnostic: a Presenter turns the Menu into widgets.
package menu

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.klb.dev/clipqture/internal/history"
)

const (
	EmptyLabel = "Empty clipboard history"
	ClearLabel = "Clear History"
	Ellipsis   = "..."
)

// Theme icons used by the fixed menu items.
const (
	EmptyIcon = history.ThemeIcon("edit-paste-symbolic")
	ClearIcon = history.ThemeIcon("edit-clear-history")
)

// Options control how entries are labelled.
type Options struct {
	// MaxLineLength is the number of characters a label may show before it
	// is cut and suffixed with "...". Zero disables truncation.
	MaxLineLength int
	// Compact keeps every label on one line by collapsing whitespace runs,
	// newlines included, to single spaces.
	Compact bool
}

// Item is one row of the menu.
type Item struct {
	Label     string
	Icon      history.Icon
	Disabled  bool
	Separator bool
	// Text is the full entry text for history rows, empty otherwise.
	Text string
	// Activate runs when the row is chosen. Nil for disabled rows and
	// separators.
	Activate func()
}

// Menu is an ordered list of items.
type Menu struct {
	Items []Item
}

// Labels returns the label of every non-separator item, in order.
func (m Menu) Labels() []string {
	out := make([]string, 0, len(m.Items))
	for _, it := range m.Items {
		if it.Separator {
			continue
		}
		out = append(out, it.Label)
	}
	return out
}

// whitespaceRun also covers vertical tab and Unicode separators (NBSP,
// U+2028), which RE2's \s leaves alone.
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}]+`)

// Label returns the display label for text.
func Label(text string, opts Options) string {
	label := strings.TrimSpace(text)
	if opts.Compact {
		label = strings.ReplaceAll(label, "\n", " ")
		label = whitespaceRun.ReplaceAllString(label, " ")
	}
	// the length check is against the untouched text
	if opts.MaxLineLength > 0 && utf8.RuneCountInString(text) > opts.MaxLineLength {
		label = strings.TrimSpace(truncate(label, opts.MaxLineLength)) + Ellipsis
	}
	return label
}

func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Build returns the menu for entries. onSelect receives the full text of the
// chosen entry; onClear runs when "Clear History" is chosen.
func Build(entries []history.Entry, opts Options, onSelect func(text string), onClear func()) Menu {
	if len(entries) == 0 {
		return Menu{Items: []Item{{
			Label:    EmptyLabel,
			Icon:     EmptyIcon,
			Disabled: true,
		}}}
	}

	items := make([]Item, 0, len(entries)+2)
	for _, e := range entries {
		text := e.Text
		items = append(items, Item{
			Label: Label(text, opts),
			Icon:  e.Icon,
			Text:  text,
			Activate: func() {
				if onSelect != nil {
					onSelect(text)
				}
			},
		})
	}
	items = append(items,
		Item{Separator: true},
		Item{
			Label: ClearLabel,
			Icon:  ClearIcon,
			Activate: func() {
				if onClear != nil {
					onClear()
				}
			},
		},
	)
	return Menu{Items: items}
}
