// Package ltx implements the engine's INI-like configuration dialect:
// ordered sections and keys, file includes, section inheritance, and an
// optional per-section schema binding.
package ltx

import (
	"strings"

	"github.com/xray-forge/xrf-go/lib/xrerr"
)

// Section is an ordered key→value mapping, plus the list of parent section
// names it inherits from (from a `[child]:parent1,parent2` header).
type Section struct {
	Name    string
	Parents []string
	keys    []string
	values  map[string]string
}

func newSection(name string) *Section {
	return &Section{Name: name, values: make(map[string]string)}
}

// Set inserts or overwrites a key, preserving first-insertion order.
func (s *Section) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns this section's own value for key, not walking parents.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the section's own keys in insertion order.
func (s *Section) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Document is an ordered collection of sections, case-insensitive on
// section-name lookup, as read from (or to be written to) a single LTX
// file after include expansion.
type Document struct {
	sectionNames []string
	sections     map[string]*Section
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{sections: make(map[string]*Section)}
}

func normalizeSectionName(name string) string {
	return strings.ToLower(name)
}

// Section returns the named section, creating it (and recording its
// insertion position) if absent.
func (d *Document) Section(name string) *Section {
	key := normalizeSectionName(name)
	if s, ok := d.sections[key]; ok {
		return s
	}
	s := newSection(name)
	d.sections[key] = s
	d.sectionNames = append(d.sectionNames, key)
	return s
}

// HasSection reports whether name exists, without creating it.
func (d *Document) HasSection(name string) bool {
	_, ok := d.sections[normalizeSectionName(name)]
	return ok
}

// LookupSection returns the named section without creating it.
func (d *Document) LookupSection(name string) (*Section, bool) {
	s, ok := d.sections[normalizeSectionName(name)]
	return s, ok
}

// Sections returns every section in insertion order.
func (d *Document) Sections() []*Section {
	out := make([]*Section, 0, len(d.sectionNames))
	for _, key := range d.sectionNames {
		out = append(out, d.sections[key])
	}
	return out
}

// Get resolves key in section, walking the inheritance graph breadth-first:
// the section's own value wins; otherwise its parents are searched in
// declaration order, then their parents, and so on. Cycles fail with
// xrerr.Invalid.
func (d *Document) Get(section, key string) (string, error) {
	start, ok := d.LookupSection(section)
	if !ok {
		return "", xrerr.New(xrerr.NotFoundChunk, "section %q not found", section)
	}

	visited := map[string]bool{normalizeSectionName(start.Name): true}
	queue := []*Section{start}
	path := []string{start.Name}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if v, ok := cur.Get(key); ok {
			return v, nil
		}

		for _, parentName := range cur.Parents {
			normalized := normalizeSectionName(parentName)
			if visited[normalized] {
				return "", xrerr.New(xrerr.Invalid, "inheritance cycle %s", strings.Join(append(path, parentName), "→"))
			}
			parent, ok := d.LookupSection(parentName)
			if !ok {
				continue
			}
			visited[normalized] = true
			path = append(path, parentName)
			queue = append(queue, parent)
		}
	}

	return "", xrerr.New(xrerr.NotFoundChunk, "key %q not found in %q or its parents", key, section)
}

// checkInheritanceCycles walks every section's parent chain looking for a
// cycle without requiring a particular key to be present; used by Verify
// and by the parser's post-pass so a cyclic file is rejected even if no
// caller ever calls Get on the offending section.
func (d *Document) checkInheritanceCycles() error {
	for _, s := range d.Sections() {
		visited := map[string]bool{normalizeSectionName(s.Name): true}
		queue := append([]string(nil), s.Parents...)
		path := []string{s.Name}
		for len(queue) > 0 {
			name := queue[0]
			queue = queue[1:]
			normalized := normalizeSectionName(name)
			if visited[normalized] {
				return xrerr.New(xrerr.Invalid, "inheritance cycle %s", strings.Join(append(path, name), "→"))
			}
			visited[normalized] = true
			path = append(path, name)
			parent, ok := d.LookupSection(name)
			if !ok {
				continue
			}
			queue = append(queue, parent.Parents...)
		}
	}
	return nil
}
