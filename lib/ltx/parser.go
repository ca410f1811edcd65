package ltx

import (
	"bufio"
	"path/filepath"
	"strings"

	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// parserState names the states of the line-oriented grammar: blank lines,
// comments, includes, section headers (with optional inheritance list),
// and key/value pairs whose value may be bare, single-, or double-quoted.
type parserState int

const (
	stateStart parserState = iota
	stateInSection
	stateInKey
	stateInValueBare
	stateInValueQuoted
	stateInComment
	stateInInclude
	stateError
)

// ParseOptions controls the dialect accepted by Parse. Defaults match the
// engine's own files: escapes off, quotes on.
type ParseOptions struct {
	// Escapes enables \\, \n, \t, \" inside quoted values.
	Escapes bool
	// Strict enforces include-path case sensitivity.
	Strict bool
}

// DefaultParseOptions is escapes-off, quotes-on, non-strict.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{}
}

// Loader resolves an include path (relative to the including file) to
// file content, so Parse never touches the filesystem directly — callers
// supply an os.ReadFile-backed Loader or an in-memory fixture loader.
type Loader interface {
	Load(path string) (string, error)
}

// parseContext threads the include-cycle set and options through recursive
// parses of included files.
type parseContext struct {
	opts    ParseOptions
	loader  Loader
	visited map[string]bool
}

// Parse parses the top-level file at path (used only to resolve relative
// #include directives; content is read via loader) and returns the
// resulting Document with all includes inlined.
func Parse(path, content string, loader Loader, opts ParseOptions) (*Document, error) {
	ctx := &parseContext{opts: opts, loader: loader, visited: map[string]bool{}}
	doc := NewDocument()
	if err := ctx.parseInto(doc, path, content); err != nil {
		return nil, err
	}
	if err := doc.checkInheritanceCycles(); err != nil {
		return nil, err
	}
	return doc, nil
}

func canonicalIncludePath(basePath, includePath string) string {
	if filepath.IsAbs(includePath) {
		return filepath.Clean(includePath)
	}
	return filepath.Clean(filepath.Join(filepath.Dir(basePath), includePath))
}

func (ctx *parseContext) parseInto(doc *Document, path, content string) error {
	cycleKey := path
	if !ctx.opts.Strict {
		cycleKey = strings.ToLower(path)
	}
	if ctx.visited[cycleKey] {
		return xrerr.New(xrerr.Parsing, "include cycle at %q", path)
	}
	ctx.visited[cycleKey] = true
	defer delete(ctx.visited, cycleKey)

	line, col := 1, 0
	var cur *Section

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		raw := scanner.Text()
		raw = strings.TrimSuffix(raw, "\r")
		col = 0

		if err := ctx.parseLine(doc, path, raw, &cur, line); err != nil {
			return err
		}
		line++
	}
	if err := scanner.Err(); err != nil {
		return xrerr.Wrap(xrerr.Io, err, "reading %s", path).WithLine(line, 0)
	}
	_ = col
	return nil
}

func (ctx *parseContext) parseLine(doc *Document, path, raw string, cur **Section, lineNo int) error {
	trimmed := strings.TrimSpace(raw)

	switch {
	case trimmed == "":
		return nil
	case strings.HasPrefix(trimmed, ";"), strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "#include"):
		return nil
	case strings.HasPrefix(trimmed, "#include"):
		return ctx.parseInclude(doc, path, trimmed, lineNo)
	case strings.HasPrefix(trimmed, "["):
		sec, err := parseSectionHeader(trimmed, lineNo)
		if err != nil {
			return err
		}
		existing := doc.Section(sec.Name)
		existing.Parents = sec.Parents
		*cur = existing
		return nil
	default:
		if *cur == nil {
			return xrerr.New(xrerr.Parsing, "key-value line outside any section: %q", raw).WithLine(lineNo, 0)
		}
		key, value, err := parseKeyValue(trimmed, ctx.opts, lineNo)
		if err != nil {
			return err
		}
		(*cur).Set(key, value)
		return nil
	}
}

func (ctx *parseContext) parseInclude(doc *Document, basePath, line string, lineNo int) error {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "#include"))
	incPath, err := parseQuotedLiteral(rest)
	if err != nil {
		return xrerr.Wrap(xrerr.Parsing, err, "bad #include directive").WithLine(lineNo, 0)
	}
	resolved := canonicalIncludePath(basePath, incPath)
	content, err := ctx.loader.Load(resolved)
	if err != nil {
		return xrerr.Wrap(xrerr.Io, err, "loading include %q", resolved).WithLine(lineNo, 0)
	}
	return ctx.parseInto(doc, resolved, content)
}

func parseQuotedLiteral(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], nil
	}
	if s == "" {
		return "", xrerr.New(xrerr.Parsing, "empty include path")
	}
	return s, nil
}

// parseSectionHeader parses `[name]` or `[name]:parent1,parent2`.
func parseSectionHeader(line string, lineNo int) (*Section, error) {
	end := strings.IndexByte(line, ']')
	if !strings.HasPrefix(line, "[") || end < 0 {
		return nil, xrerr.New(xrerr.Parsing, "malformed section header: %q", line).WithLine(lineNo, 0)
	}
	name := strings.TrimSpace(line[1:end])
	if name == "" {
		return nil, xrerr.New(xrerr.Parsing, "empty section name").WithLine(lineNo, 0)
	}
	sec := newSection(name)

	rest := strings.TrimSpace(line[end+1:])
	if strings.HasPrefix(rest, ":") {
		parentList := strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if parentList != "" {
			for _, p := range strings.Split(parentList, ",") {
				p = strings.TrimSpace(p)
				if p != "" {
					sec.Parents = append(sec.Parents, p)
				}
			}
		}
	}
	return sec, nil
}

func parseKeyValue(line string, opts ParseOptions, lineNo int) (key, value string, err error) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", "", xrerr.New(xrerr.Parsing, "missing '=' in key-value line: %q", line).WithLine(lineNo, 0)
	}
	key = strings.TrimSpace(line[:eq])
	if key == "" {
		return "", "", xrerr.New(xrerr.Parsing, "empty key").WithLine(lineNo, 0)
	}
	rawValue := strings.TrimSpace(line[eq+1:])
	value, err = parseValue(rawValue, opts, lineNo)
	return key, value, err
}

func parseValue(raw string, opts ParseOptions, lineNo int) (string, error) {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') {
		quote := raw[0]
		closeIdx := -1
		for i := 1; i < len(raw); i++ {
			if raw[i] == '\\' && opts.Escapes {
				i++
				continue
			}
			if raw[i] == quote {
				closeIdx = i
				break
			}
		}
		if closeIdx < 0 {
			return "", xrerr.New(xrerr.Parsing, "unterminated quoted value: %q", raw).WithLine(lineNo, 0)
		}
		body := raw[1:closeIdx]
		if opts.Escapes {
			body = unescape(body)
		}
		return body, nil
	}

	// Bare value: trim an inline `;` comment and trailing whitespace.
	if idx := strings.IndexByte(raw, ';'); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimRight(raw, " \t"), nil
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case 't':
				b.WriteByte('\t')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
