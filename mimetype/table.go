package mimetype

import "strings"

// ByExtension returns the MIME type conventionally associated with ext. A leading dot is ignored
// and the lookup is case-insensitive. The empty extension never matches.
func ByExtension(ext string) (MimeType, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return MimeType{}, false
	}

	essence, ok := extensions[ext]
	if !ok {
		return MimeType{}, false
	}

	return MustParse(essence), true
}

// extensions is the static extension table. Keys are lower case and have no leading dot.
var extensions = map[string]string{
	// application
	"7z":      "application/x-7z-compressed",
	"apk":     "application/vnd.android.package-archive",
	"bz2":     "application/x-bzip2",
	"cbz":     "application/vnd.comicbook+zip",
	"deb":     "application/vnd.debian.binary-package",
	"doc":     "application/msword",
	"docx":    "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"epub":    "application/epub+zip",
	"gz":      "application/gzip",
	"iso":     "application/x-iso9660-image",
	"jar":     "application/java-archive",
	"js":      "application/javascript",
	"json":    "application/json",
	"mjs":     "application/javascript",
	"odp":     "application/vnd.oasis.opendocument.presentation",
	"ods":     "application/vnd.oasis.opendocument.spreadsheet",
	"odt":     "application/vnd.oasis.opendocument.text",
	"pdf":     "application/pdf",
	"ppt":     "application/vnd.ms-powerpoint",
	"pptx":    "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"ps":      "application/postscript",
	"rar":     "application/vnd.rar",
	"rpm":     "application/x-rpm",
	"rtf":     "application/rtf",
	"sh":      "application/x-sh",
	"sql":     "application/sql",
	"tar":     "application/x-tar",
	"torrent": "application/x-bittorrent",
	"wasm":    "application/wasm",
	"xhtml":   "application/xhtml+xml",
	"xls":     "application/vnd.ms-excel",
	"xlsx":    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"xml":     "application/xml",
	"xz":      "application/x-xz",
	"yaml":    "application/x-yaml",
	"yml":     "application/x-yaml",
	"zip":     "application/zip",
	"zst":     "application/zstd",

	// audio
	"aac":  "audio/aac",
	"flac": "audio/flac",
	"m4a":  "audio/mp4",
	"mid":  "audio/midi",
	"midi": "audio/midi",
	"mp3":  "audio/mpeg",
	"oga":  "audio/ogg",
	"ogg":  "audio/ogg",
	"opus": "audio/opus",
	"wav":  "audio/wav",
	"weba": "audio/webm",

	// font
	"otf":   "font/otf",
	"ttf":   "font/ttf",
	"woff":  "font/woff",
	"woff2": "font/woff2",

	// image
	"avif": "image/avif",
	"bmp":  "image/bmp",
	"gif":  "image/gif",
	"heic": "image/heic",
	"ico":  "image/x-icon",
	"jpe":  "image/jpeg",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"webp": "image/webp",
	"xcf":  "image/x-xcf",

	// text
	"c":        "text/x-c",
	"cc":       "text/x-c",
	"conf":     "text/plain",
	"cpp":      "text/x-c",
	"css":      "text/css",
	"csv":      "text/csv",
	"go":       "text/x-go",
	"h":        "text/x-c",
	"htm":      "text/html",
	"html":     "text/html",
	"ics":      "text/calendar",
	"ini":      "text/plain",
	"java":     "text/x-java-source",
	"log":      "text/plain",
	"markdown": "text/markdown",
	"md":       "text/markdown",
	"py":       "text/x-python",
	"rs":       "text/x-rust",
	"tex":      "text/x-tex",
	"toml":     "text/plain",
	"tsv":      "text/tab-separated-values",
	"txt":      "text/plain",
	"vcf":      "text/vcard",

	// video
	"3gp":  "video/3gpp",
	"avi":  "video/x-msvideo",
	"flv":  "video/x-flv",
	"m4v":  "video/mp4",
	"mkv":  "video/x-matroska",
	"mov":  "video/quicktime",
	"mp4":  "video/mp4",
	"mpeg": "video/mpeg",
	"mpg":  "video/mpeg",
	"ogv":  "video/ogg",
	"webm": "video/webm",
	"wmv":  "video/x-ms-wmv",
}
