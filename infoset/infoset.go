// Package infoset implements the parsed-value tree the sequence driver
// appends to as it parses. A Complex node is the ordered-children container
// a sequence parses into; a Simple node is a scalar leaf value.
//
// Complex keeps its children in arrival order and, for unordered sequences,
// can re-sort them by the compiled child index once parsing of the group is
// done. The re-sort keeps entries with the same compiled index in arrival
// order, the same stable-merge discipline the teacher's x/omap.OrderedMap
// uses to keep a sorted key slice without disturbing same-key entries.
package infoset

// Node is either a Simple leaf or a nested Complex group.
type Node interface {
	isNode()
}

// Simple is a scalar parsed value.
type Simple struct {
	Name        string
	Value       interface{}
	ChildIndex  int // compiled position of the term that produced this node
}

func (*Simple) isNode() {}

// NewSimple creates a leaf infoset node for the given compiled child index.
func NewSimple(name string, value interface{}, childIndex int) *Simple {
	return &Simple{Name: name, Value: value, ChildIndex: childIndex}
}

// Complex is a branch node: the ordered list of children of a sequence,
// choice, or array.
type Complex struct {
	Name           string
	children       []Node
	childIndexHint int // compiled position of the term that produced this node, when nested
}

func (*Complex) isNode() {}

// NewComplex creates an empty complex infoset node.
func NewComplex(name string) *Complex {
	return &Complex{Name: name}
}

// SetChildIndex records the compiled child index of the term that produced
// this node, for use when this Complex is itself a child of an unordered
// sequence and needs sorting alongside its Simple siblings.
func (c *Complex) SetChildIndex(i int) {
	c.childIndexHint = i
}

// Children returns the current ordered child list. The returned slice must
// not be mutated by the caller; use Append/Truncate instead.
func (c *Complex) Children() []Node {
	return c.children
}

// Len returns the number of children currently attached.
func (c *Complex) Len() int {
	return len(c.children)
}

// Append adds a node to the end of the child list, as ordered (left-to-
// right) parsing always does.
func (c *Complex) Append(n Node) {
	c.children = append(c.children, n)
}

// Truncate drops every child from index n onward. Used by a PoU reset to
// undo the infoset side effects of a failed speculative attempt.
func (c *Complex) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(c.children) {
		return
	}
	c.children = c.children[:n]
}

// childIndexOf extracts the compiled child index from a node, used to sort
// an unordered sequence's arrival-order children back into compiled order.
func childIndexOf(n Node) int {
	switch v := n.(type) {
	case *Simple:
		return v.ChildIndex
	case *Complex:
		return v.childIndexHint
	default:
		return 0
	}
}

// FlattenAndValidate re-sorts the children appended since startIdx into
// compiled order using a stable sort (arrival order is preserved among
// children sharing the same compiled index, exactly as
// x/omap.OrderedMap.Add keeps insertion order among equal keys). It is a
// no-op for ordered sequences, which never need reordering because
// children are appended in compiled order to begin with.
func (c *Complex) FlattenAndValidate(startIdx int) {
	if startIdx < 0 || startIdx >= len(c.children) {
		return
	}
	tail := c.children[startIdx:]
	// insertion sort: tails are short (one group's worth of children) and
	// stability matters more than asymptotic complexity here.
	for i := 1; i < len(tail); i++ {
		for j := i; j > 0 && childIndexOf(tail[j-1]) > childIndexOf(tail[j]); j-- {
			tail[j-1], tail[j] = tail[j], tail[j-1]
		}
	}
}
