package allocator

import "github.com/mesh-intelligence/themes/pkg/types"

// DisplayTheme pairs a theme with its display index.
type DisplayTheme struct {
	Index int
	types.Theme
}

// Renumber gives every theme a display index 1, 2, 3… in dictionary order.
// Display indices keep PIDs short and are unrelated to theme IDs.
func Renumber(a types.Assignment) []DisplayTheme {
	out := make([]DisplayTheme, len(a.Themes))
	for i, t := range a.Themes {
		out[i] = DisplayTheme{Index: i + 1, Theme: t}
	}
	return out
}
