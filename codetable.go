package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// CodeTable maps each Symbol to its Huffman code.  A table derived from a
// tree is prefix-free and every code in it is non-empty.
type CodeTable map[Symbol]Code

// DeriveCodes walks the tree rooted at root and returns the code of every
// leaf: a 0 bit for each step to the left, a 1 bit for each step to the
// right.
//
// A tree that is a lone leaf gets the one-bit code "0", as an empty code
// could not be transmitted.  A nil root yields an empty table.
//
func DeriveCodes(root *Node) CodeTable {
	codes := make(CodeTable)
	if root == nil {
		return codes
	}
	if root.leaf {
		codes[root.symbol] = MakeCode(1, 0)
		return codes
	}
	deriveCodes(codes, root, Code{})
	return codes
}

func deriveCodes(codes CodeTable, n *Node, path Code) {
	if n.leaf {
		codes[n.symbol] = path
		return
	}
	if n.left != nil {
		deriveCodes(codes, n.left, path.Append(0))
	}
	if n.right != nil {
		deriveCodes(codes, n.right, path.Append(1))
	}
}

// MinSize is the bit length of the shortest code, or 0 for an empty table.
func (codes CodeTable) MinSize() byte {
	var minSize byte
	first := true
	for _, hc := range codes {
		if first || minSize > hc.Size {
			minSize = hc.Size
			first = false
		}
	}
	return minSize
}

// MaxSize is the bit length of the longest code, or 0 for an empty table.
func (codes CodeTable) MaxSize() byte {
	var maxSize byte
	for _, hc := range codes {
		if maxSize < hc.Size {
			maxSize = hc.Size
		}
	}
	return maxSize
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet, 0 for Symbols without a code.  CanonicalCodes reconstructs
// the canonical form of this table from it.
//
func (codes CodeTable) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	for symbol, hc := range codes {
		out[symbol] = hc.Size
	}
	return out
}

// BitLength returns the number of bits needed to encode input with the given
// frequencies using this table.  Symbols without a code contribute nothing.
func (codes CodeTable) BitLength(freqs FrequencyTable) uint64 {
	var total uint64
	for symbol, count := range freqs {
		hc, found := codes[symbol]
		if !found {
			continue
		}
		total = saturatingAdd(total, saturatingMul(count, uint64(hc.Size)))
	}
	return total
}

// IsPrefixFree returns true iff no code in the table is empty and no code is
// a prefix of a different code.
func (codes CodeTable) IsPrefixFree() bool {
	return codes.checkPrefixFree() == nil
}

func (codes CodeTable) checkPrefixFree() error {
	symbols := codes.sortedSymbols()
	for i, a := range symbols {
		ha := codes[a]
		if ha.Size == 0 {
			return fmt.Errorf("%w: symbol %s has an empty code", ErrNotPrefixFree, a)
		}
		for _, b := range symbols[i+1:] {
			hb := codes[b]
			if ha.HasPrefix(hb) || hb.HasPrefix(ha) {
				return fmt.Errorf("%w: codes %s for %s and %s for %s overlap", ErrNotPrefixFree, ha, a, hb, b)
			}
		}
	}
	return nil
}

// Canonical returns the canonical Huffman code with the same code lengths as
// this table: codes are assigned in order of (length, Symbol), each one the
// successor of the previous, per RFC 1951 Section 3.2.2.
func (codes CodeTable) Canonical() (CodeTable, error) {
	return CanonicalCodes(codes.SizeBySymbol())
}

// CanonicalCodes constructs the canonical Huffman code for the given bit
// lengths, one per Symbol.  Symbols with a bit length of 0 are omitted.
//
// The lengths must describe a complete code.  As in DEFLATE, the degenerate
// code with a single one-bit Symbol is permitted.
//
func CanonicalCodes(sizes []byte) (CodeTable, error) {
	if len(sizes) > NumSymbols {
		return nil, fmt.Errorf("too many bit lengths: got %d, max %d", len(sizes), NumSymbols)
	}

	// Step 1: sort the symbols by (size, symbol) ascending.

	sorted := make(bySize, 0, len(sizes))
	for symbol, size := range sizes {
		if size != 0 {
			sorted = append(sorted, symbolAndSize{Symbol(symbol), size})
		}
	}
	sorted.Sort()

	codes := make(CodeTable, len(sorted))
	if len(sorted) == 0 {
		return codes, nil
	}

	// Step 2: assign the codes sequentially.  Each code is the previous one
	// plus one, padded with 0 bits to the new length.

	var hc Code
	for index, item := range sorted {
		if index != 0 {
			var ok bool
			hc, ok = hc.successor()
			if !ok {
				return nil, fmt.Errorf("%w: bit lengths oversubscribe the code space at symbol %s", ErrNotPrefixFree, item.symbol)
			}
		}
		for hc.Size < item.size {
			hc = hc.Append(0)
		}
		codes[item.symbol] = hc
	}

	// permit degenerate code with 1 symbol
	// forbid all other incomplete codes
	if len(sorted) == 1 && sorted[0].size == 1 {
		return codes, nil
	}
	if _, ok := hc.successor(); ok {
		return nil, fmt.Errorf("incomplete Huffman code: bit lengths leave unused codes")
	}
	return codes, nil
}

// successor returns the next Code of the same size in binary order, reading
// the first bit as the most significant.  ok is false if hc is all ones.
func (hc Code) successor() (Code, bool) {
	for i := int(hc.Size) - 1; i >= 0; i-- {
		word, mask := i/64, uint64(1)<<(uint(i)%64)
		if hc.Bits[word]&mask == 0 {
			hc.Bits[word] |= mask
			return hc, true
		}
		hc.Bits[word] &^= mask
	}
	return hc, false
}

// TreeFromCodes builds the trie of a prefix-free code table.  Decoding with
// the trie is equivalent to decoding with the tree the table was derived
// from.
//
// An empty table yields nil.  A table holding one Symbol with the code "0"
// yields a lone leaf, mirroring DeriveCodes.  Tables whose codes do not fill
// the code space yield a tree with missing children.
//
func TreeFromCodes(codes CodeTable) (*Node, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	if err := codes.checkPrefixFree(); err != nil {
		return nil, err
	}
	if len(codes) == 1 {
		for symbol, hc := range codes {
			if hc == MakeCode(1, 0) {
				return NewLeaf(symbol, 0), nil
			}
		}
	}

	root := &Node{}
	for _, symbol := range codes.sortedSymbols() {
		hc := codes[symbol]
		n := root
		for i := byte(0); i < hc.Size; i++ {
			next := &n.left
			if hc.Bit(i) != 0 {
				next = &n.right
			}
			if *next == nil {
				if i == hc.Size-1 {
					*next = NewLeaf(symbol, 0)
				} else {
					*next = &Node{}
				}
			}
			n = *next
		}
	}
	return root, nil
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (codes CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", codes.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", codes.MaxSize())
	for _, symbol := range codes.sortedSymbols() {
		fmt.Fprintf(&buf, "\tEncode(%s) = %s\n", symbol, codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (codes CodeTable) sortedSymbols() []Symbol {
	out := make([]Symbol, 0, len(codes))
	for symbol := range codes {
		out = append(out, symbol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// type symbolAndSize + type bySize {{{

type symbolAndSize struct {
	symbol Symbol
	size   byte
}

type bySize []symbolAndSize

func (list bySize) Len() int {
	return len(list)
}

func (list bySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.size != b.size {
		return a.size < b.size
	}
	return a.symbol < b.symbol
}

func (list bySize) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = bySize(nil)

// }}}
