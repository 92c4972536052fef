// Package schema compiles a small YAML schema describing a flat sequence
// of fields into the term.ChildParser list package seqdriver
// runs. It is intentionally a toy: schema compilation, validation, and the
// XML-backed DFDL schema format itself are explicitly out of scope for
// this engine — this package exists only to give the CLI and its tests a
// concrete, textual way to describe a sequence without hand-building
// childparsers values in Go.
package schema

import (
	"fmt"

	"github.com/flowdev/seqparse/childparsers"
	"github.com/flowdev/seqparse/term"
	"gopkg.in/yaml.v3"
)

// Doc is the YAML document shape: a named, ordered-or-unordered sequence of
// children.
type Doc struct {
	Name     string       `yaml:"name"`
	Ordered  bool         `yaml:"ordered"`
	Children []ChildDoc   `yaml:"children"`
}

// ChildDoc describes one sequence child. Kind selects which childparsers
// type it compiles to: "field" (Scalar), "repeating" (fixed-width array),
// "separated" (separator-delimited array), or "marker" (non-represented
// step; compiled with no Effect, so a no-op here).
type ChildDoc struct {
	Kind       string `yaml:"kind"`
	Name       string `yaml:"name"`
	WidthBytes int    `yaml:"width"`
	Required   bool   `yaml:"required"`
	NeedsPoU   bool   `yaml:"needs_pou"`
	MinOccurs  uint64 `yaml:"min"`
	MaxOccurs  uint64 `yaml:"max"`
	Positional bool   `yaml:"positional"`
	Separator  string `yaml:"separator"`
}

// Parse unmarshals a schema document from YAML bytes.
func Parse(raw []byte) (*Doc, error) {
	var doc Doc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("schema: missing name")
	}
	return &doc, nil
}

// Compile builds the ChildParser list the document describes, bound to
// input. Each child's CompiledIndex is its position in Children, so an
// unordered document's infoset still flattens back to schema order.
func Compile(doc *Doc, input []byte) ([]term.ChildParser, error) {
	children := make([]term.ChildParser, 0, len(doc.Children))
	for i, c := range doc.Children {
		switch c.Kind {
		case "field":
			children = append(children, &childparsers.Field{
				Input:          input,
				Name:           c.Name,
				WidthBytes:     c.WidthBytes,
				Required:       c.Required,
				NeedsPoU:       c.NeedsPoU,
				SchemaLocation: fmt.Sprintf("%s/children[%d]", doc.Name, i),
				CompiledIndex:  i,
			})
		case "repeating":
			children = append(children, &childparsers.RepeatingField{
				Input:          input,
				Name:           c.Name,
				WidthBytes:     c.WidthBytes,
				MinOccurs:      c.MinOccurs,
				MaxOccurs:      c.MaxOccurs,
				Positional:     c.Positional,
				NeedsPoU:       c.NeedsPoU,
				SchemaLocation: fmt.Sprintf("%s/children[%d]", doc.Name, i),
				CompiledIndex:  i,
			})
		case "separated":
			if len(c.Separator) != 1 {
				return nil, fmt.Errorf("schema: child %d (%s): separator must be exactly one byte", i, c.Name)
			}
			children = append(children, &childparsers.SeparatedField{
				Input:          input,
				Name:           c.Name,
				Separator:      c.Separator[0],
				MinOccurs:      c.MinOccurs,
				MaxOccurs:      c.MaxOccurs,
				Positional:     c.Positional,
				NeedsPoU:       c.NeedsPoU,
				SchemaLocation: fmt.Sprintf("%s/children[%d]", doc.Name, i),
				CompiledIndex:  i,
			})
		case "marker":
			children = append(children, &childparsers.Marker{
				Name:           c.Name,
				SchemaLocation: fmt.Sprintf("%s/children[%d]", doc.Name, i),
			})
		default:
			return nil, fmt.Errorf("schema: child %d (%s): unknown kind %q", i, c.Name, c.Kind)
		}
	}
	return children, nil
}
