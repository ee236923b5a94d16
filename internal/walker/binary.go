package walker

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/standardbeagle/semfora/internal/config"
	"github.com/standardbeagle/semfora/internal/langdetect"
	"github.com/standardbeagle/semfora/internal/types"
)

// binaryExtensions flags file extensions as binary (true), explicitly
// text (false, so an unrelated default doesn't misclassify it), or absent
// (unknown, falls through to the magic-number check).
var binaryExtensions = map[string]bool{
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".webp": true, ".svg": false, ".tiff": true, ".tif": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".7z": true, ".rar": true, ".jar": true, ".war": true, ".ear": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true,
	".o": true, ".obj": true, ".bin": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
	".flv": true, ".wav": true, ".flac": true, ".ogg": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true,
	".db": true, ".sqlite": true, ".sqlite3": true,
	".min.js": false, ".min.css": false, ".map": false, ".proto": false,
	".pyc": true, ".pyo": true, ".class": true, ".pickle": true, ".pkl": true,
}

// isBinaryByExtension reports whether path's extension identifies it as
// binary without reading its content.
func isBinaryByExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	if strings.HasSuffix(path, ".min.js") || strings.HasSuffix(path, ".min.css") {
		return false
	}
	isBinary, known := binaryExtensions[ext]
	return known && isBinary
}

var magicNumbers = []struct {
	prefix []byte
}{
	{[]byte{0x1F, 0x8B}},             // gzip
	{[]byte{0x50, 0x4B, 0x03, 0x04}}, // zip (local file header)
	{[]byte{0x50, 0x4B, 0x05, 0x06}}, // zip (empty archive)
	{[]byte{0x89, 0x50, 0x4E, 0x47}}, // png
	{[]byte{0xFF, 0xD8, 0xFF}},       // jpeg
	{[]byte{0x47, 0x49, 0x46, 0x38}}, // gif
	{[]byte{0x25, 0x50, 0x44, 0x46}}, // pdf
	{[]byte{0x7F, 0x45, 0x4C, 0x46}}, // elf
	{[]byte{0x4D, 0x5A}},             // pe/dos
	{[]byte{0xCA, 0xFE, 0xBA, 0xBE}}, // mach-o
	{[]byte{0x77, 0x4F, 0x46, 0x46}}, // woff
	{[]byte{0x77, 0x4F, 0x46, 0x32}}, // woff2
}

// isBinaryByMagicNumber sniffs the leading bytes of content for known
// binary signatures, falling back to a null-byte/non-printable-ratio
// heuristic for unrecognized formats.
func isBinaryByMagicNumber(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	n := config.BinaryPreCheckBytes
	if len(content) < n {
		n = len(content)
	}
	sample := content[:n]

	for _, m := range magicNumbers {
		if bytes.HasPrefix(sample, m.prefix) {
			return true
		}
	}

	var nullBytes, nonPrintable int
	for _, b := range sample {
		if b == 0 {
			nullBytes++
		}
		if b < 0x20 && b != 0x09 && b != 0x0A && b != 0x0D {
			nonPrintable++
		}
	}
	if nullBytes > len(sample)/100 {
		return true
	}
	if nonPrintable > len(sample)*30/100 {
		return true
	}
	return false
}

// IsBinary combines the extension fast-path with the content sniff. content
// may be nil, in which case only the extension check applies. The walker
// only calls this to keep unparseable noise out of the indexing pipeline
// (spec §12 supplement), never to gate a file langdetect already claims as
// a supported source language — an extensionless script whose shebang
// resolves to a known language overrides a magic-number false positive
// (e.g. a high non-ASCII ratio from embedded i18n strings).
func IsBinary(path string, content []byte) bool {
	if isBinaryByExtension(path) {
		return true
	}
	if len(content) == 0 {
		return false
	}
	if !isBinaryByMagicNumber(content) {
		return false
	}
	return langdetect.Detect(path, content) == types.LangUnsupported
}
