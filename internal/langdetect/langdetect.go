// Package langdetect maps a file path and its leading bytes to a Language
// tag (spec §4.1). Dispatch is by extension with a small set of
// content-based overrides: a Vue single-file component is tagged with the
// language its script block's lang attribute names (the script block
// itself is not extracted from the file), and extensionless files fall
// back to shebang sniffing.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/standardbeagle/semfora/internal/types"
)

var extensionTable = map[string]types.Language{
	".go":    types.LangGo,
	".ts":    types.LangTypeScript,
	".tsx":   types.LangTypeScript,
	".mts":   types.LangTypeScript,
	".cts":   types.LangTypeScript,
	".js":    types.LangJavaScript,
	".jsx":   types.LangJavaScript,
	".mjs":   types.LangJavaScript,
	".cjs":   types.LangJavaScript,
	".py":    types.LangPython,
	".pyi":   types.LangPython,
	".rs":    types.LangRust,
	".cs":    types.LangCSharp,
	".cpp":   types.LangCPP,
	".cc":    types.LangCPP,
	".cxx":   types.LangCPP,
	".hpp":   types.LangCPP,
	".h":     types.LangCPP,
	".java":  types.LangJava,
	".php":   types.LangPHP,
	".zig":   types.LangZig,
	".sh":    types.LangShell,
	".bash":  types.LangShell,
}

// shebangTable maps the interpreter named on a `#!` line to a language.
var shebangTable = map[string]types.Language{
	"sh":      types.LangShell,
	"bash":    types.LangShell,
	"python":  types.LangPython,
	"python3": types.LangPython,
	"node":    types.LangJavaScript,
}

// Detect returns the language tag for path given its raw bytes. It never
// returns an error: unknown extensions yield types.LangUnsupported, which
// the caller records in overview stats rather than treating as a failure
// (spec §4.1).
func Detect(path string, raw []byte) types.Language {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".vue" {
		if lang, ok := detectVueScriptLang(raw); ok {
			return lang
		}
		return types.LangTypeScript // Vue SFCs default to TS-flavored extraction
	}

	if lang, ok := extensionTable[ext]; ok {
		return lang
	}

	if ext == "" {
		if lang, ok := detectShebang(raw); ok {
			return lang
		}
	}

	return types.LangUnsupported
}

func detectShebang(raw []byte) (types.Language, bool) {
	if len(raw) < 2 || raw[0] != '#' || raw[1] != '!' {
		return "", false
	}
	end := indexByte(raw, '\n')
	if end < 0 {
		end = len(raw)
	}
	line := string(raw[2:end])
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	interp := filepath.Base(fields[0])
	if interp == "env" && len(fields) > 1 {
		interp = fields[1]
	}
	lang, ok := shebangTable[interp]
	return lang, ok
}

// detectVueScriptLang looks for a `<script lang="...">` attribute in a
// single-file component and returns the declared language, if any.
func detectVueScriptLang(raw []byte) (types.Language, bool) {
	src := string(raw)
	idx := strings.Index(src, "<script")
	if idx < 0 {
		return "", false
	}
	tagEnd := strings.Index(src[idx:], ">")
	if tagEnd < 0 {
		return "", false
	}
	tag := src[idx : idx+tagEnd]
	if strings.Contains(tag, `lang="ts"`) || strings.Contains(tag, `lang='ts'`) {
		return types.LangTypeScript, true
	}
	if strings.Contains(tag, `lang="js"`) || strings.Contains(tag, `lang='js'`) {
		return types.LangJavaScript, true
	}
	return "", false
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}
