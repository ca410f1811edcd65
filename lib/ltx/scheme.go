package ltx

import (
	"strconv"
	"strings"
)

// FieldType names the primitive types a scheme field can declare.
type FieldType int

const (
	FieldString FieldType = iota
	FieldBool
	FieldInt
	FieldFloat
	FieldVector
	FieldEnum
)

// FieldSpec is one scheme-declared field: its type, whether it's required,
// and (for FieldEnum) the allowed literal values.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
	Values   []string
}

// Scheme is a named set of field declarations plus a strict flag: when
// strict, a section bound to this scheme may not carry keys the scheme
// doesn't declare.
type Scheme struct {
	Name    string
	Strict  bool
	Fields  []FieldSpec
	fieldIx map[string]int
}

// SchemeError is one verification failure: a bad field on a bound section.
type SchemeError struct {
	Section string
	Field   string
	Message string
}

func (e SchemeError) String() string {
	return e.Section + "." + e.Field + ": " + e.Message
}

// parseScheme builds a Scheme named after sec, taking Strict from its
// optional `strict` key. Schemes are loaded from `*.scheme.ltx` files and
// indexed by section name.
func parseScheme(sec *Section) Scheme {
	s := Scheme{Name: sec.Name, fieldIx: map[string]int{}}
	if strict, ok := sec.Get("strict"); ok {
		s.Strict = strings.EqualFold(strict, "true") || strict == "1"
	}
	for _, key := range sec.Keys() {
		if key == "strict" {
			continue
		}
		value, _ := sec.Get(key)
		spec := FieldSpec{Name: key}
		parts := strings.Split(value, ",")
		typeName := strings.TrimSpace(parts[0])
		switch strings.ToLower(typeName) {
		case "bool", "boolean":
			spec.Type = FieldBool
		case "int", "integer":
			spec.Type = FieldInt
		case "float", "number":
			spec.Type = FieldFloat
		case "vector", "vec3":
			spec.Type = FieldVector
		case "enum":
			spec.Type = FieldEnum
			spec.Values = append(spec.Values, parts[1:]...)
			for i := range spec.Values {
				spec.Values[i] = strings.TrimSpace(spec.Values[i])
			}
		default:
			spec.Type = FieldString
		}
		for _, p := range parts {
			if strings.TrimSpace(p) == "required" {
				spec.Required = true
			}
		}
		s.fieldIx[key] = len(s.Fields)
		s.Fields = append(s.Fields, spec)
	}
	return s
}

// SchemeTable indexes every scheme declared across a project's
// `*.scheme.ltx` files by name.
type SchemeTable struct {
	schemes map[string]Scheme
}

// NewSchemeTable builds a table from every section of every given document.
func NewSchemeTable(docs ...*Document) *SchemeTable {
	t := &SchemeTable{schemes: map[string]Scheme{}}
	for _, doc := range docs {
		for _, sec := range doc.Sections() {
			t.schemes[normalizeSectionName(sec.Name)] = parseScheme(sec)
		}
	}
	return t
}

// Lookup returns the named scheme, if declared.
func (t *SchemeTable) Lookup(name string) (Scheme, bool) {
	s, ok := t.schemes[normalizeSectionName(name)]
	return s, ok
}

// Verify checks every section of doc that declares `$scheme = name` against
// the table, returning zero or more SchemeErrors. A section not bound to
// any scheme, or bound to a scheme the table doesn't know, is not an error
// by itself — only field-level mismatches and (when strict) unknown keys
// are reported.
func Verify(doc *Document, table *SchemeTable) []SchemeError {
	var errs []SchemeError
	for _, sec := range doc.Sections() {
		schemeName, ok := sec.Get("$scheme")
		if !ok {
			continue
		}
		scheme, ok := table.Lookup(schemeName)
		if !ok {
			continue
		}
		errs = append(errs, verifySection(sec, scheme)...)
	}
	return errs
}

func verifySection(sec *Section, scheme Scheme) []SchemeError {
	var errs []SchemeError
	declared := map[string]bool{"$scheme": true}
	for _, f := range scheme.Fields {
		declared[f.Name] = true
		value, present := sec.Get(f.Name)
		if !present {
			if f.Required {
				errs = append(errs, SchemeError{Section: sec.Name, Field: f.Name, Message: "required field missing"})
			}
			continue
		}
		if msg, ok := checkFieldType(f, value); !ok {
			errs = append(errs, SchemeError{Section: sec.Name, Field: f.Name, Message: msg})
		}
	}
	if scheme.Strict {
		for _, key := range sec.Keys() {
			if !declared[key] {
				errs = append(errs, SchemeError{Section: sec.Name, Field: key, Message: "unknown field (strict scheme)"})
			}
		}
	}
	return errs
}

func checkFieldType(f FieldSpec, value string) (string, bool) {
	switch f.Type {
	case FieldBool:
		if value != "true" && value != "false" && value != "0" && value != "1" {
			return "not a bool: " + value, false
		}
	case FieldInt:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return "not an int: " + value, false
		}
	case FieldFloat:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "not a float: " + value, false
		}
	case FieldVector:
		parts := strings.Fields(value)
		if len(parts) != 3 {
			return "not a 3-component vector: " + value, false
		}
		for _, p := range parts {
			if _, err := strconv.ParseFloat(p, 32); err != nil {
				return "not a 3-component vector: " + value, false
			}
		}
	case FieldEnum:
		found := false
		for _, allowed := range f.Values {
			if allowed == value {
				found = true
				break
			}
		}
		if !found {
			return "value " + value + " not in " + strings.Join(f.Values, "|"), false
		}
	}
	return "", true
}
