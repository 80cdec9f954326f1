package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"

	"github.com/chronos-tachyon/huffpack/pqueue"
)

// Node is a node of a Huffman tree.  A leaf holds one Symbol; an internal
// node exclusively owns its children.  Nodes are never shared between trees.
type Node struct {
	left   *Node
	right  *Node
	freq   uint64
	symbol Symbol
	leaf   bool
}

// NewLeaf returns a leaf Node for symbol.
func NewLeaf(symbol Symbol, freq uint64) *Node {
	return &Node{symbol: symbol, freq: freq, leaf: true}
}

// NewInternal returns an internal Node that takes ownership of left and
// right.  Either child may be nil for a partially built tree, but such a tree
// cannot decode every bit sequence.
//
func NewInternal(left, right *Node) *Node {
	var freq uint64
	if left != nil {
		freq = saturatingAdd(freq, left.freq)
	}
	if right != nil {
		freq = saturatingAdd(freq, right.freq)
	}
	return &Node{left: left, right: right, freq: freq}
}

// IsLeaf returns true iff this Node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Symbol returns the Symbol of a leaf.  It is meaningless for internal nodes.
func (n *Node) Symbol() Symbol {
	return n.symbol
}

// Freq returns the weight of this Node: the count of a leaf, or the sum of
// the leaves beneath an internal node.  Trees parsed from a tree descriptor
// carry no weights.
//
func (n *Node) Freq() uint64 {
	return n.freq
}

// Left returns the child reached by a 0 bit, or nil.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the child reached by a 1 bit, or nil.
func (n *Node) Right() *Node {
	return n.right
}

// Child returns the child reached by bit.
func (n *Node) Child(bit uint) *Node {
	if bit == 0 {
		return n.left
	}
	return n.right
}

// Depth returns the length of the longest path from this Node to a leaf.
func (n *Node) Depth() int {
	if n == nil || n.leaf {
		return 0
	}
	l, r := n.left.Depth(), n.right.Depth()
	if l < r {
		l = r
	}
	return l + 1
}

// NumLeaves returns the number of leaves beneath (or at) this Node.
func (n *Node) NumLeaves() int {
	if n == nil {
		return 0
	}
	if n.leaf {
		return 1
	}
	return n.left.NumLeaves() + n.right.NumLeaves()
}

// String returns a compact representation of the tree rooted at this Node,
// e.g. "(9 'a':4 (5 'c':2 'b':3))".
func (n *Node) String() string {
	var buf strings.Builder
	n.format(&buf)
	return buf.String()
}

func (n *Node) format(buf *strings.Builder) {
	switch {
	case n == nil:
		buf.WriteString("nil")
	case n.leaf:
		fmt.Fprintf(buf, "%s:%d", n.symbol, n.freq)
	default:
		fmt.Fprintf(buf, "(%d ", n.freq)
		n.left.format(buf)
		buf.WriteByte(' ')
		n.right.format(buf)
		buf.WriteByte(')')
	}
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer, one node per line, with each leaf's path from this Node.
func (n *Node) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	n.dump(&buf, Code{}, 1)
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (n *Node) dump(buf *bytes.Buffer, path Code, indent int) {
	buf.WriteString(strings.Repeat("\t", indent))
	switch {
	case n == nil:
		buf.WriteString("nil\n")
	case n.leaf:
		fmt.Fprintf(buf, "Leaf(%s) = {%d, %s}\n", n.symbol, n.freq, path)
	default:
		fmt.Fprintf(buf, "Internal = {%d}\n", n.freq)
		n.left.dump(buf, path.Append(0), indent+1)
		n.right.dump(buf, path.Append(1), indent+1)
	}
}

// BuildTree builds a Huffman tree from the given frequencies.
//
// An empty table (or one whose counts are all zero) yields nil.  A table with
// exactly one Symbol yields a lone leaf; DeriveCodes gives that leaf the
// one-bit code "0".
//
// Ties between nodes of equal weight go to the node created first.  Leaves
// are created in ascending Symbol order, and internal nodes after all leaves
// in the order they are merged.  This makes the tree deterministic, but
// callers should rely only on the code lengths it implies.
//
func BuildTree(freqs FrequencyTable) *Node {
	symbols := freqs.Symbols()
	switch len(symbols) {
	case 0:
		return nil
	case 1:
		return NewLeaf(symbols[0], freqs[symbols[0]])
	}

	// Step 1: build a minheap of leaves.

	h := pqueue.NewFunc(pqueue.Min, nodeAndSeq.less)
	var nextSeq uint32
	for _, symbol := range symbols {
		h.Push(nodeAndSeq{NewLeaf(symbol, freqs[symbol]), nextSeq})
		nextSeq++
	}

	// Step 2: repeatedly merge the two lightest nodes until one remains.

	for h.Len() > 1 {
		l, _ := h.Pop()
		r, _ := h.Pop()
		h.Push(nodeAndSeq{NewInternal(l.node, r.node), nextSeq})
		nextSeq++
	}

	root, ok := h.Pop()
	assert.Assertf(ok && h.Len() == 0, "heap should hold exactly one root")
	return root.node
}

// type nodeAndSeq {{{

type nodeAndSeq struct {
	node *Node
	seq  uint32
}

func (a nodeAndSeq) less(b nodeAndSeq) bool {
	if a.node.freq != b.node.freq {
		return a.node.freq < b.node.freq
	}
	return a.seq < b.seq
}

// }}}
