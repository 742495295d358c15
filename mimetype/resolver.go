package mimetype

import (
	"regexp"
	"strings"
)

// FileMatch overrides extension based lookup for every path matching Pattern.
type FileMatch struct {
	Pattern *regexp.Regexp
	Mime    MimeType
}

// DefaultMatches returns the patterns used by the command line tool: http and https URLs are
// opened as text/html regardless of what they point to.
func DefaultMatches() []FileMatch {
	return []FileMatch{
		{
			Pattern: regexp.MustCompile(`https?://.*`),
			Mime:    MustParse("text/html"),
		},
	}
}

// Resolver maps paths to MIME types. The zero value only does extension lookups.
type Resolver struct {
	matches []FileMatch
}

// NewResolver returns a Resolver that checks matches, in order, before looking at extensions.
// The slice is copied.
func NewResolver(matches []FileMatch) *Resolver {
	return &Resolver{matches: append([]FileMatch(nil), matches...)}
}

// Resolve returns the MIME type of path.
// The first matching [FileMatch] wins. Otherwise, the extension of the last path component is
// looked up with [ByExtension]. When that fails too, [OctetStream] is returned.
func (r *Resolver) Resolve(path string) MimeType {
	if m, ok := r.match(path); ok {
		return m
	}

	if m, ok := ByExtension(Extension(path)); ok {
		return m
	}

	return OctetStream
}

func (r *Resolver) match(path string) (MimeType, bool) {
	for _, fm := range r.matches {
		if fm.Pattern.MatchString(path) {
			return fm.Mime, true
		}
	}

	return MimeType{}, false
}

// Extension returns the part after the last dot of the final component of path, without the dot.
// Trailing slashes are ignored. Dot files such as .bashrc, "." and ".." have no extension.
func Extension(path string) string {
	path = strings.TrimRight(path, "/")
	name := path[strings.LastIndexByte(path, '/')+1:]
	if name == ".." {
		return ""
	}

	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}

	return name[i+1:]
}
