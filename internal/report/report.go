// Package report renders a parsed infoset tree for the seqparse CLI,
// grounded directly on dittofs's internal/cli/output table helpers: the
// same tablewriter setup (no borders, two-space padding, left alignment)
// for a flattened field/value table, plus a JSON rendering for scripting.
package report

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/flowdev/seqparse/infoset"
	"github.com/olekukonko/tablewriter"
)

// Row is one flattened infoset leaf: its dotted path, compiled child index,
// and formatted value.
type Row struct {
	Path  string
	Index int
	Value string
}

// Headers implements output.TableRenderer's shape for PrintTable-style
// callers.
func (Row) Headers() []string { return []string{"FIELD", "INDEX", "VALUE"} }

// Flatten walks root depth-first, producing one Row per Simple leaf with a
// dotted path name built from each ancestor Complex's Name.
func Flatten(root *infoset.Complex) []Row {
	var rows []Row
	flattenInto(root, root.Name, &rows)
	return rows
}

func flattenInto(c *infoset.Complex, prefix string, rows *[]Row) {
	for _, child := range c.Children() {
		switch v := child.(type) {
		case *infoset.Simple:
			*rows = append(*rows, Row{Path: prefix + "." + v.Name, Index: v.ChildIndex, Value: formatValue(v.Value)})
		case *infoset.Complex:
			flattenInto(v, prefix+"."+v.Name, rows)
		}
	}
}

func formatValue(v interface{}) string {
	b, ok := v.([]byte)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return base64.StdEncoding.EncodeToString(b)
}

// PrintTable renders root as a borderless field/index/value table, the same
// style dittofs's output.PrintTable uses for its own command output.
func PrintTable(w io.Writer, root *infoset.Complex) error {
	rows := Flatten(root)

	table := tablewriter.NewWriter(w)
	table.SetHeader(Row{}.Headers())
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, r := range rows {
		table.Append([]string{r.Path, fmt.Sprintf("%d", r.Index), r.Value})
	}
	table.Render()
	return nil
}

// jsonNode mirrors Row but as a tree, for PrintJSON's nested output.
type jsonNode struct {
	Name     string      `json:"name"`
	Value    interface{} `json:"value,omitempty"`
	Children []jsonNode  `json:"children,omitempty"`
}

func toJSONNode(n infoset.Node) jsonNode {
	switch v := n.(type) {
	case *infoset.Simple:
		val := v.Value
		if b, ok := val.([]byte); ok {
			val = base64.StdEncoding.EncodeToString(b)
		}
		return jsonNode{Name: v.Name, Value: val}
	case *infoset.Complex:
		out := jsonNode{Name: v.Name}
		for _, c := range v.Children() {
			out.Children = append(out.Children, toJSONNode(c))
		}
		return out
	default:
		return jsonNode{}
	}
}

// PrintJSON renders root as an indented JSON tree.
func PrintJSON(w io.Writer, root *infoset.Complex) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSONNode(root))
}
