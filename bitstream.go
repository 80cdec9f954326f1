package huffpack

import (
	"bytes"
	"fmt"
	mathbits "math/bits"

	"github.com/icza/bitio"
)

// Encode concatenates the codes of symbols, in input order, and packs them
// into bytes, first bit in the most significant position of the first byte.
// The last byte is padded with 0 bits.  bitCount is the number of meaningful
// bits; the padding is not part of it.
//
// Every input byte must have a code, otherwise Encode fails with an
// *UnknownSymbolError.
//
func Encode(symbols []byte, codes CodeTable) (packed []byte, bitCount uint64, err error) {
	var lookup [NumSymbols]Code
	for symbol, hc := range codes {
		if hc.Size == 0 {
			return nil, 0, fmt.Errorf("%w: symbol %s has an empty code", ErrNotPrefixFree, symbol)
		}
		lookup[symbol] = hc
	}

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for offset, b := range symbols {
		hc := lookup[b]
		if hc.Size == 0 {
			return nil, 0, &UnknownSymbolError{Symbol: Symbol(b), Offset: offset}
		}
		if err := writeCode(w, hc); err != nil {
			return nil, 0, err
		}
		bitCount += uint64(hc.Size)
	}
	if err := w.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), bitCount, nil
}

// writeCode writes the bits of hc, first bit first.
func writeCode(w *bitio.Writer, hc Code) error {
	remaining := hc.Size
	for word := 0; remaining != 0; word++ {
		n := remaining
		if n > 64 {
			n = 64
		}
		// bitio writes the most significant of the n bits first.
		bits := mathbits.Reverse64(hc.Bits[word]) >> (64 - n)
		if err := w.WriteBits(bits, n); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

// Decode walks the tree rooted at root once per code: a 0 bit steps left, a 1
// bit steps right, and reaching a leaf emits its Symbol and restarts at the
// root.  Exactly bitCount bits are consumed; trailing padding is ignored.
//
// If root is a lone leaf, each 0 bit emits its Symbol.
//
// Decode fails with ErrTruncatedStream if packed holds fewer than bitCount
// bits or the bits end in the middle of a code, and with ErrCorruptTree if a
// step needs a child that does not exist.
//
func Decode(packed []byte, bitCount uint64, root *Node) ([]byte, error) {
	return decode(packed, bitCount, root, 0)
}

func decode(packed []byte, bitCount uint64, root *Node, sizeHint int) ([]byte, error) {
	if need := packedLen(bitCount); need > uint64(len(packed)) {
		return nil, fmt.Errorf("%w: %d bits need %d bytes, got %d", ErrTruncatedStream, bitCount, need, len(packed))
	}
	if bitCount != 0 && root == nil {
		return nil, fmt.Errorf("%w: no tree to decode %d bits", ErrCorruptTree, bitCount)
	}

	out := make([]byte, 0, sizeHint)
	r := bitio.NewReader(bytes.NewReader(packed))
	n := root
	for pos := uint64(0); pos < bitCount; pos++ {
		bit, err := r.ReadBits(1)
		if err != nil {
			return nil, fmt.Errorf("%w: at bit %d: %v", ErrTruncatedStream, pos, err)
		}

		if root.leaf {
			if bit != 0 {
				return nil, fmt.Errorf("%w: lone leaf %s has no child for bit 1 at bit %d", ErrCorruptTree, root.symbol, pos)
			}
			out = append(out, byte(root.symbol))
			continue
		}

		next := n.Child(uint(bit))
		if next == nil {
			return nil, fmt.Errorf("%w: no child for bit %d at bit %d", ErrCorruptTree, bit, pos)
		}
		if next.leaf {
			out = append(out, byte(next.symbol))
			n = root
		} else {
			n = next
		}
	}

	if n != root {
		return nil, fmt.Errorf("%w: bitstream ends inside a code after %d bits", ErrTruncatedStream, bitCount)
	}
	return out, nil
}
