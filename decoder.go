package huffpack

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/icza/bitio"
)

// Decoder is a table-driven decoder for a prefix-free code.  It maps every
// code and every proper prefix of a code to what is known after reading
// those bits, so it decodes without a tree.
type Decoder struct {
	table   map[Code]decoderData
	sizes   []byte
	minSize byte
	maxSize byte
}

// Init initializes this Decoder from a code table, which must be
// prefix-free.  An empty table is permitted and decodes nothing.
func (d *Decoder) Init(codes CodeTable) error {
	if err := codes.checkPrefixFree(); err != nil {
		return err
	}

	// permit degenerate code with 0 symbols
	if len(codes) == 0 {
		*d = Decoder{}
		return nil
	}

	numSymbols := uint32(len(codes))

	// len(table) is approximately n×log2(n) when filled.
	numTableSlots := numSymbols * log2uint32(numSymbols)

	*d = Decoder{
		table:   make(map[Code]decoderData, numTableSlots),
		sizes:   codes.SizeBySymbol(),
		minSize: codes.MinSize(),
		maxSize: codes.MaxSize(),
	}

	for _, symbol := range codes.sortedSymbols() {
		fillTable(d.table, symbol, codes[symbol])
	}
	return nil
}

// InitCanonical initializes this Decoder with the canonical Huffman code for
// the given bit lengths, as built by CanonicalCodes.
func (d *Decoder) InitCanonical(sizes []byte) error {
	codes, err := CanonicalCodes(sizes)
	if err != nil {
		return err
	}
	return d.Init(codes)
}

// Decode looks up a sequence of bits.
//
// If hc is a complete code, found is true and minSize == maxSize == hc.Size.
//
// If hc is a proper prefix of one or more codes, found is false and at least
// (minSize - hc.Size), at most (maxSize - hc.Size), additional bits are
// required to decode a symbol.
//
// If hc is not a prefix of any code, found is false and
// minSize == maxSize == 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, found bool, minSize byte, maxSize byte) {
	dd, ok := d.table[hc]
	if !ok {
		return 0, false, 0, 0
	}
	return dd.symbol, dd.leaf, dd.minSize, dd.maxSize
}

// DecodeBits decodes exactly bitCount bits of packed, as Decode does with a
// tree.  The two agree for a table and the tree it was derived from.
func (d Decoder) DecodeBits(packed []byte, bitCount uint64) ([]byte, error) {
	if need := packedLen(bitCount); need > uint64(len(packed)) {
		return nil, fmt.Errorf("%w: %d bits need %d bytes, got %d", ErrTruncatedStream, bitCount, need, len(packed))
	}
	if bitCount != 0 && len(d.table) == 0 {
		return nil, fmt.Errorf("%w: no codes to decode %d bits", ErrCorruptTree, bitCount)
	}

	var out []byte
	r := bitio.NewReader(bytes.NewReader(packed))
	var hc Code
	for pos := uint64(0); pos < bitCount; pos++ {
		bit, err := r.ReadBits(1)
		if err != nil {
			return nil, fmt.Errorf("%w: at bit %d: %v", ErrTruncatedStream, pos, err)
		}
		hc = hc.Append(uint(bit))

		dd, ok := d.table[hc]
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a prefix of any code at bit %d", ErrCorruptTree, hc, pos)
		}
		if dd.leaf {
			out = append(out, byte(dd.symbol))
			hc = Code{}
		}
	}

	if hc.Size != 0 {
		return nil, fmt.Errorf("%w: bitstream ends inside code prefix %s", ErrTruncatedStream, hc)
	}
	return out, nil
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() byte {
	return d.maxSize
}

// NumSymbols returns the number of Symbols with a code.
func (d Decoder) NumSymbols() int {
	var n int
	for _, size := range d.sizes {
		if size != 0 {
			n++
		}
	}
	return n
}

// SizeBySymbol returns the bit length of each Symbol's code, 0 for Symbols
// without one.
func (d Decoder) SizeBySymbol() []byte {
	out := make([]byte, NumSymbols)
	copy(out, d.sizes)
	return out
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		symbol := "-"
		if dd.leaf {
			symbol = dd.symbol.String()
		}
		fmt.Fprintf(&buf, "\tDecode(%s) = {%s, %d, %d}\n", hc, symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the Dump output as a string.
func (d Decoder) DebugString() string {
	var buf bytes.Buffer
	_, _ = d.Dump(&buf)
	return buf.String()
}

// String returns a brief description of this Decoder.
func (d Decoder) String() string {
	return fmt.Sprintf("(Huffman decoder with %d symbols, with coded lengths of %d .. %d bits)", d.NumSymbols(), d.minSize, d.maxSize)
}

// MarshalJSON records the bit length of each Symbol, up to the last Symbol
// with a code.  Only the lengths are kept, so UnmarshalJSON restores the
// canonical code with those lengths.
//
func (d Decoder) MarshalJSON() ([]byte, error) {
	last := len(d.sizes)
	for last > 0 && d.sizes[last-1] == 0 {
		last--
	}
	sizes := make([]uint, last)
	for i := range sizes {
		sizes[i] = uint(d.sizes[i])
	}
	return json.Marshal(sizes)
}

// UnmarshalJSON initializes this Decoder from the output of MarshalJSON.
func (d *Decoder) UnmarshalJSON(raw []byte) error {
	var list []uint
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}
	sizes := make([]byte, len(list))
	for i, size := range list {
		if size > MaxCodeSize {
			return fmt.Errorf("invalid bit length for symbol %d: got %d, max %d", i, size, MaxCodeSize)
		}
		sizes[i] = byte(size)
	}
	return d.InitCanonical(sizes)
}

var (
	_ fmt.Stringer     = Decoder{}
	_ json.Marshaler   = Decoder{}
	_ json.Unmarshaler = (*Decoder)(nil)
)

type decoderData struct {
	symbol  Symbol
	leaf    bool
	minSize byte
	maxSize byte
}

func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) {
	dd := decoderData{symbol, true, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "...xxxa", compute "...xxxA" where A = NOT a.

		last := hc.Size - 1
		word, mask := last/64, uint64(1)<<(last%64)
		hc.Bits[word] ^= mask

		// Merge the dd's from "...xxxa" (dd) and "...xxxA" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{0, false, dd.minSize, dd.maxSize}
		if ddSibling, found := table[hc]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "...xxxA" to "...xxx".

		hc.Size--
		hc.Bits[word] &^= mask

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	for k := byte(0); k < a.Size; k++ {
		if x, y := a.Bit(k), b.Bit(k); x != y {
			return x < y
		}
	}
	return false
}

var _ sort.Interface = byCode(nil)

// }}}
