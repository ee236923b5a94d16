// Package toon implements the line-oriented textual encoding described in
// spec §6: scalar fields, comma-joined scalar lists, record lists with a
// declared row count and field header, and indented object blocks. The
// encoder preserves a fixed canonical field order per record type so
// byte-identical inputs produce byte-identical output (spec §6, §8
// determinism property).
package toon

import (
	"strconv"
	"strings"
)

// structuralChars are characters that force a value to be quoted, since
// they would otherwise be ambiguous against TOON's own delimiters.
const structuralChars = ":,{}[]\n"

// Writer builds a TOON document line by line.
type Writer struct {
	b      strings.Builder
	indent int
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.b.WriteString("  ")
	}
}

// Scalar writes `key: value` on its own line.
func (w *Writer) Scalar(key, value string) {
	w.writeIndent()
	w.b.WriteString(key)
	w.b.WriteString(": ")
	w.b.WriteString(EncodeValue(value))
	w.b.WriteByte('\n')
}

// ScalarBool writes a boolean scalar.
func (w *Writer) ScalarBool(key string, value bool) {
	w.Scalar(key, strconv.FormatBool(value))
}

// ScalarInt writes an integer scalar.
func (w *Writer) ScalarInt(key string, value int) {
	w.Scalar(key, strconv.Itoa(value))
}

// ScalarList writes `key[N]: a,b,c`.
func (w *Writer) ScalarList(key string, values []string) {
	w.writeIndent()
	w.b.WriteString(key)
	w.b.WriteByte('[')
	w.b.WriteString(strconv.Itoa(len(values)))
	w.b.WriteString("]: ")
	for i, v := range values {
		if i > 0 {
			w.b.WriteByte(',')
		}
		w.b.WriteString(EncodeValue(v))
	}
	w.b.WriteByte('\n')
}

// RecordList writes `key[N]{field1,field2,...}:` followed by N
// comma-separated, two-space-indented rows whose field order matches the
// header.
func (w *Writer) RecordList(key string, fields []string, rows [][]string) {
	w.writeIndent()
	w.b.WriteString(key)
	w.b.WriteByte('[')
	w.b.WriteString(strconv.Itoa(len(rows)))
	w.b.WriteString("]{")
	w.b.WriteString(strings.Join(fields, ","))
	w.b.WriteString("}:\n")

	w.indent++
	for _, row := range rows {
		w.writeIndent()
		for i, v := range row {
			if i > 0 {
				w.b.WriteByte(',')
			}
			w.b.WriteString(EncodeValue(v))
		}
		w.b.WriteByte('\n')
	}
	w.indent--
}

// ObjectStart writes `key:` and indents subsequent writes.
func (w *Writer) ObjectStart(key string) {
	w.writeIndent()
	w.b.WriteString(key)
	w.b.WriteString(":\n")
	w.indent++
}

// ObjectEnd un-indents after an object block.
func (w *Writer) ObjectEnd() {
	if w.indent > 0 {
		w.indent--
	}
}

// RawBlock writes an indented verbatim block under key, one source line
// per output line, used for raw_fallback's full-source payload.
func (w *Writer) RawBlock(key, content string) {
	w.ObjectStart(key)
	for _, line := range strings.Split(content, "\n") {
		w.writeIndent()
		w.b.WriteString(line)
		w.b.WriteByte('\n')
	}
	w.ObjectEnd()
}

func (w *Writer) String() string {
	return w.b.String()
}

// EncodeValue quotes value if it contains a structural character or a
// double quote, or has leading/trailing whitespace; the empty string is
// written as ""; otherwise the value is written bare.
func EncodeValue(value string) string {
	if value == "" {
		return `""`
	}
	if !needsQuote(value) {
		return value
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuote(value string) bool {
	if value != strings.TrimSpace(value) {
		return true
	}
	return strings.ContainsAny(value, structuralChars) || strings.ContainsAny(value, `"`)
}
