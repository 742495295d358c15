// Package mimetype resolves paths and URLs to MIME types.
//
// Resolution tries an ordered list of [FileMatch] patterns first, then the built-in extension
// table and finally falls back to application/octet-stream. It never fails.
package mimetype

import (
	"fmt"
	"slices"
	"strings"
)

// OctetStream is the type of content nothing more specific is known about.
var OctetStream = MimeType{Top: "application", Subtype: "octet-stream"}

// MimeType is a parsed MIME type such as text/html; charset=utf-8.
// Only Top and Subtype take part in lookups, see [MimeType.Essence].
type MimeType struct {
	Top     string
	Subtype string
	Params  map[string]string
}

// MalformedTypeError is returned by [Parse] for input that is not of the form top/subtype.
type MalformedTypeError struct {
	Input string
}

func (e MalformedTypeError) Error() string {
	return fmt.Sprintf("malformed MIME type %q", e.Input)
}

// Parse parses s in the form top/subtype[; key=value]...
// Type, subtype and parameter names are lower-cased.
func Parse(s string) (MimeType, error) {
	essence, rest, _ := strings.Cut(s, ";")
	top, sub, found := strings.Cut(strings.TrimSpace(essence), "/")
	if !found || top == "" || sub == "" || strings.ContainsAny(sub, "/ ") {
		return MimeType{}, MalformedTypeError{Input: s}
	}

	result := MimeType{
		Top:     strings.ToLower(top),
		Subtype: strings.ToLower(sub),
	}

	for _, param := range strings.Split(rest, ";") {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}

		key, value, found := strings.Cut(param, "=")
		if !found || key == "" {
			return MimeType{}, MalformedTypeError{Input: s}
		}

		if result.Params == nil {
			result.Params = make(map[string]string)
		}
		result.Params[strings.ToLower(strings.TrimSpace(key))] = strings.Trim(strings.TrimSpace(value), `"`)
	}

	return result, nil
}

// MustParse is like [Parse] but panics on error. It is meant for static tables.
func MustParse(s string) MimeType {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return m
}

// Essence returns top/subtype without parameters.
func (m MimeType) Essence() string {
	return m.Top + "/" + m.Subtype
}

// Equal reports whether m and other have the same top and subtype. Parameters are ignored.
func (m MimeType) Equal(other MimeType) bool {
	return m.Top == other.Top && m.Subtype == other.Subtype
}

func (m MimeType) String() string {
	if len(m.Params) == 0 {
		return m.Essence()
	}

	keys := make([]string, 0, len(m.Params))
	for key := range m.Params {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var b strings.Builder
	b.WriteString(m.Essence())
	for _, key := range keys {
		b.WriteString("; ")
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(m.Params[key])
	}

	return b.String()
}
