package huffpack

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// AppendTreeDescriptor serializes the tree rooted at root and appends it to
// dst.  The descriptor is the pre-order walk of the tree as a bit sequence:
//
//     leaf:     1, followed by the 8-bit Symbol
//     internal: 0, followed by the left subtree, then the right subtree
//
// packed first bit first, with the last byte padded with 0 bits.  A nil root
// appends nothing.  Node weights are not serialized.
//
// Every internal node must have both children; otherwise ErrCorruptTree.
//
func AppendTreeDescriptor(dst []byte, root *Node) ([]byte, error) {
	if root == nil {
		return dst, nil
	}

	buf := bytes.NewBuffer(dst)
	w := bitio.NewWriter(buf)
	if err := writeNode(w, root); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNode(w *bitio.Writer, n *Node) error {
	if n.leaf {
		if err := w.WriteBool(true); err != nil {
			return err
		}
		return w.WriteBits(uint64(n.symbol), 8)
	}

	if n.left == nil || n.right == nil {
		return fmt.Errorf("%w: internal node with a missing child cannot be serialized", ErrCorruptTree)
	}
	if err := w.WriteBool(false); err != nil {
		return err
	}
	if err := writeNode(w, n.left); err != nil {
		return err
	}
	return writeNode(w, n.right)
}

// ParseTreeDescriptor reconstructs the tree serialized by
// AppendTreeDescriptor.  An empty descriptor yields a nil tree.
//
// The descriptor is rejected with ErrMalformedTree if it ends early, repeats
// a Symbol, nests deeper than MaxCodeSize, or is followed by anything other
// than fewer than 8 zero bits of padding.
//
func ParseTreeDescriptor(desc []byte) (*Node, error) {
	if len(desc) == 0 {
		return nil, nil
	}

	p := treeParser{r: bitio.NewReader(bytes.NewReader(desc))}
	root, err := p.parse(0)
	if err != nil {
		return nil, err
	}

	padding := uint64(len(desc))*8 - p.pos
	if padding >= 8 {
		return nil, fmt.Errorf("%w: %d trailing bits after the tree", ErrMalformedTree, padding)
	}
	if padding != 0 {
		bits, err := p.r.ReadBits(uint8(padding))
		if err != nil {
			return nil, fmt.Errorf("%w: reading padding: %v", ErrMalformedTree, err)
		}
		if bits != 0 {
			return nil, fmt.Errorf("%w: non-zero padding bits", ErrMalformedTree)
		}
	}
	return root, nil
}

type treeParser struct {
	r    *bitio.Reader
	pos  uint64
	seen [NumSymbols]bool
}

func (p *treeParser) read(n uint8) (uint64, error) {
	bits, err := p.r.ReadBits(n)
	if err != nil {
		return 0, fmt.Errorf("%w: descriptor ends at bit %d: %v", ErrMalformedTree, p.pos, err)
	}
	p.pos += uint64(n)
	return bits, nil
}

func (p *treeParser) parse(depth int) (*Node, error) {
	flag, err := p.read(1)
	if err != nil {
		return nil, err
	}

	if flag == 1 {
		bits, err := p.read(8)
		if err != nil {
			return nil, err
		}
		symbol := Symbol(bits)
		if p.seen[symbol] {
			return nil, fmt.Errorf("%w: symbol %s appears twice", ErrMalformedTree, symbol)
		}
		p.seen[symbol] = true
		return NewLeaf(symbol, 0), nil
	}

	if depth >= MaxCodeSize {
		return nil, fmt.Errorf("%w: tree is deeper than %d", ErrMalformedTree, MaxCodeSize)
	}
	left, err := p.parse(depth + 1)
	if err != nil {
		return nil, err
	}
	right, err := p.parse(depth + 1)
	if err != nil {
		return nil, err
	}
	return NewInternal(left, right), nil
}
