package ltx

import "strings"

// WriteOptions controls Format's serialization.
type WriteOptions struct {
	// Separator sits between key and value; default " = ".
	Separator string
	// Newline terminates each line; default "\r\n" to match
	// Windows-produced files.
	Newline string
}

// DefaultWriteOptions matches the engine's own writer.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Separator: " = ", Newline: "\r\n"}
}

// Format serializes doc: sections in insertion order, keys in insertion
// order within each section, with `[name]:parent1,parent2` headers for
// sections that have parents. Running Format on the result of Parse(Format(doc))
// produces byte-identical output — the format is a fixed point after one
// pass.
func Format(doc *Document, opts WriteOptions) string {
	var b strings.Builder
	for _, sec := range doc.Sections() {
		b.WriteString("[")
		b.WriteString(sec.Name)
		b.WriteString("]")
		if len(sec.Parents) > 0 {
			b.WriteString(":")
			b.WriteString(strings.Join(sec.Parents, ","))
		}
		b.WriteString(opts.Newline)
		for _, key := range sec.Keys() {
			value, _ := sec.Get(key)
			b.WriteString(key)
			b.WriteString(opts.Separator)
			b.WriteString(quoteIfNeeded(value))
			b.WriteString(opts.Newline)
		}
	}
	return b.String()
}

// quoteIfNeeded wraps a value in double quotes if leaving it bare would
// change its meaning on reparse (leading/trailing whitespace, or an inline
// `;`).
func quoteIfNeeded(v string) string {
	needsQuote := v != strings.TrimRight(v, " \t") || strings.ContainsAny(v, ";")
	if !needsQuote {
		return v
	}
	return "\"" + v + "\""
}
