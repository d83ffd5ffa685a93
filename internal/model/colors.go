package model

import (
	"maps"
	"slices"
)

// Named styles used when printing statuses.
const (
	StyleName      = "name"
	StyleText      = "text"
	StyleAt        = "at"
	StyleLink      = "link"
	StyleTag       = "tag"
	StylePhoto     = "photo"
	StyleTimeAgo   = "timeago"
	StyleHighlight = "highlight"
)

// ColorScheme maps a named style to a color token such as "cyan.bold",
// "205" or "#ff8800.underline".
type ColorScheme map[string]string

// DefaultColorScheme returns the built-in scheme.
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		StyleName:      "green",
		StyleText:      "",
		StyleAt:        "cyan",
		StyleLink:      "cyan.underline",
		StyleTag:       "yellow",
		StylePhoto:     "blue",
		StyleTimeAgo:   "gray",
		StyleHighlight: "bold",
	}
}

// StyleNames returns the configurable style names in a stable order.
func StyleNames() []string {
	return []string{
		StyleName,
		StyleText,
		StyleAt,
		StyleLink,
		StyleTag,
		StylePhoto,
		StyleTimeAgo,
		StyleHighlight,
	}
}

// Clone returns an independent copy of the scheme.
func (s ColorScheme) Clone() ColorScheme {
	if s == nil {
		return nil
	}

	return maps.Clone(s)
}

// Names returns the style names present in the scheme, sorted.
func (s ColorScheme) Names() []string {
	return slices.Sorted(maps.Keys(s))
}
